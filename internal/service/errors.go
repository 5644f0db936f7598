// Package service 包含了应用的业务逻辑层。
package service

import "errors"

// 业务错误哨兵。对外展示的消息为法语，由前端直接透传给用户。
var (
	ErrUserExists         = errors.New("Un utilisateur avec cet email existe déjà")
	ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect")
	ErrUserNotFound       = errors.New("Utilisateur non trouvé")
	ErrQuotaExceeded      = errors.New("Quota de questions atteint")
	ErrPostNotFound       = errors.New("Post non trouvé")
	ErrCommentNotFound    = errors.New("Commentaire non trouvé")
	ErrAccessDenied       = errors.New("Accès refusé")
	ErrMissingFields      = errors.New("Champs obligatoires manquants")
)
