package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GenerationKind string

const (
	GenerationCoverLetter    GenerationKind = "cover_letter"
	GenerationParagraph      GenerationKind = "cover_letter_paragraph"
	GenerationResumeSection  GenerationKind = "resume_section"
	GenerationResumeFeedback GenerationKind = "resume_feedback"
)

// GenerationLog records one language-model call. Stored in Mongo with a TTL.
type GenerationLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Kind      GenerationKind     `bson:"kind" json:"kind"`
	Selector  string             `bson:"selector,omitempty" json:"selector,omitempty"` // paragraph type / resume section
	Provider  string             `bson:"provider" json:"provider"`
	Success   bool               `bson:"success" json:"success"`
	Fallback  bool               `bson:"fallback" json:"fallback"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	LatencyMS int64              `bson:"latency_ms" json:"latency_ms"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"-"`
}
