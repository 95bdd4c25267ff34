package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // message affichable à l'utilisateur
	Fields    map[string]string // erreurs de validation par champ (optionnel)
	Err       error             // erreur interne (pour les logs)
}
