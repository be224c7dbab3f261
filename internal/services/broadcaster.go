package services

import "towers-verifier-backend/internal/models"

type Broadcaster interface {
	BroadcastVerification(event *models.VerificationEvent)
}
