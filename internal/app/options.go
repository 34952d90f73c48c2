package service

import (
	"time"

	"github.com/marblehq/bountyboard/internal/adapters/ocr"
	"github.com/marblehq/bountyboard/internal/adapters/repository"
	"github.com/marblehq/bountyboard/internal/domain/bounty"
	"github.com/marblehq/bountyboard/internal/domain/parse"
	"github.com/marblehq/bountyboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRecognizer sets the OCR engine.
func WithRecognizer(r ocr.Recognizer) Option {
	return func(s *Service) {
		if r != nil {
			s.recognizer = r
		}
	}
}

// WithParser sets the screenshot parser.
func WithParser(p *parse.Parser) Option {
	return func(s *Service) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithCalculator sets the bounty calculator.
func WithCalculator(c *bounty.Calculator) Option {
	return func(s *Service) {
		if c != nil {
			s.calc = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxScreenshots caps the number of screenshots per submission.
func WithMaxScreenshots(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxScreenshots = n
		}
	}
}

// WithOCRTimeout bounds recognition time per screenshot.
func WithOCRTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ocrTimeout = d
		}
	}
}

// WithQueueCapacity bounds the mutation task queue.
func WithQueueCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueCapacity = n
		}
	}
}
