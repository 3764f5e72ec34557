package service

import (
	"github.com/cropdoctor/cropdoctor/internal/domain"
)

// DetectionRepository is re-exported from domain for convenience
type DetectionRepository = domain.DetectionRepository
