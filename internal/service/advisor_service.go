package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mobiadvisor-be/internal/constant"
	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/advisor/correction"
	"mobiadvisor-be/pkg/advisor/intent"
	"mobiadvisor-be/pkg/advisor/recovery"
	"mobiadvisor-be/pkg/advisor/response"
	"mobiadvisor-be/pkg/advisor/retrieval"
	"mobiadvisor-be/pkg/store"
)

type IAdvisorService interface {
	// Process never returns an error: every failure path terminates in a
	// valid Response, preferring degraded catalog data over an error screen.
	Process(ctx context.Context, query string, filters *store.Filters, history []store.ConversationTurn) *store.Response

	CompareMany(ctx context.Context, phoneIds []int) (*store.CategoryAnalysis, error)
}

type advisorService struct {
	classifier *intent.Classifier
	corrector  *correction.Corrector
	retriever  *retrieval.Orchestrator
	generator  *response.Generator
	recoverer  *recovery.Recoverer
	phones     contract.PhoneRepository
	logger     logger.ILogger
}

func NewAdvisorService(
	classifier *intent.Classifier,
	corrector *correction.Corrector,
	retriever *retrieval.Orchestrator,
	generator *response.Generator,
	recoverer *recovery.Recoverer,
	phones contract.PhoneRepository,
	log logger.ILogger,
) IAdvisorService {
	return &advisorService{
		classifier: classifier,
		corrector:  corrector,
		retriever:  retriever,
		generator:  generator,
		recoverer:  recoverer,
		phones:     phones,
		logger:     log,
	}
}

func (s *advisorService) Process(ctx context.Context, query string, filters *store.Filters, history []store.ConversationTurn) *store.Response {
	query = strings.TrimSpace(query)
	if query == "" {
		return &store.Response{Message: constant.EmptyQueryMessage}
	}

	if len(history) > constant.MaxHistoryTurns {
		history = history[len(history)-constant.MaxHistoryTurns:]
	}

	result, err := s.run(ctx, query, filters, history)
	if err == nil {
		return result
	}

	return s.degrade(ctx, query, err)
}

// run is the primary pipeline: classify -> correct -> retrieve -> summarize.
// Stages execute strictly sequentially; each stage's output gates the next.
func (s *advisorService) run(ctx context.Context, query string, filters *store.Filters, history []store.ConversationTurn) (*store.Response, error) {
	var parsed *intent.Intent
	err := recovery.Retry(ctx, 3, func(ctx context.Context) error {
		var classifyErr error
		parsed, classifyErr = s.classifier.Classify(ctx, query, history)
		return classifyErr
	})
	if err != nil {
		return nil, err
	}

	if parsed.Task == intent.TaskReject {
		message := constant.RejectionMessage
		if parsed.RejectionReason != "" {
			message = intent.RefusalMessage(parsed.RejectionReason)
		}
		return &store.Response{Message: message}, nil
	}

	if parsed.IsFollowup {
		if resp := s.answerFollowup(ctx, query, history); resp != nil {
			return resp, nil
		}
	}

	if parsed.Task == intent.TaskGeneralQA {
		var answer string
		err := recovery.Retry(ctx, 3, func(ctx context.Context) error {
			var genErr error
			answer, genErr = s.generator.AnswerGeneral(ctx, query, history)
			return genErr
		})
		if err != nil {
			return nil, err
		}
		return &store.Response{Message: answer}, nil
	}

	corrected := s.corrector.Correct(ctx, parsed)
	merged := retrieval.MergeFilters(filters, corrected)

	phones, err := s.retriever.Retrieve(ctx, corrected, merged, query)
	if err != nil {
		return nil, err
	}

	if len(phones) == 0 {
		return &store.Response{Message: constant.EmptyResultMessage}, nil
	}

	phones = retrieval.Dedup(phones)
	if len(phones) > constant.MaxResponsePhones {
		phones = phones[:constant.MaxResponsePhones]
	}

	summary := s.generator.Summarize(ctx, query, phones, history)
	return &store.Response{Message: summary, Phones: phones}, nil
}

// answerFollowup reuses the phones from the most recent carrying turn,
// skipping retrieval entirely. A "which is best" follow-up reduces to the
// single highest-rated phone.
func (s *advisorService) answerFollowup(ctx context.Context, query string, history []store.ConversationTurn) *store.Response {
	// History phones arrive from the client, so the dedup and cap rules
	// apply here just as on the retrieval path.
	phones := retrieval.Dedup(intent.PhonesFromHistory(history))
	if len(phones) == 0 {
		return nil
	}

	if intent.IsBestQuery(query) {
		ranked := append([]*entity.Phone(nil), phones...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].UserRating > ranked[j].UserRating
		})
		phones = ranked[:1]
	}
	if len(phones) > constant.MaxResponsePhones {
		phones = phones[:constant.MaxResponsePhones]
	}

	summary := s.generator.Summarize(ctx, query, phones, history)
	return &store.Response{Message: summary, Phones: phones}
}

// degrade runs the keyword fallback after the primary pipeline failed.
func (s *advisorService) degrade(ctx context.Context, query string, cause error) *store.Response {
	classified := recovery.Classify(cause)
	s.logger.Error("advisor", "pipeline failed, attempting keyword fallback", map[string]interface{}{
		"error": cause.Error(),
		"kind":  string(classified.Kind),
	})

	phones, err := s.recoverer.Recover(ctx, query)
	if err != nil || len(phones) == 0 {
		return &store.Response{
			Message: classified.UserMessage,
			Error:   string(classified.Kind),
		}
	}

	return &store.Response{
		Message: fmt.Sprintf("I found %d phones that might match your query. AI features are temporarily unavailable.", len(phones)),
		Phones:  phones,
		Warning: constant.DegradedWarning,
	}
}

func (s *advisorService) CompareMany(ctx context.Context, phoneIds []int) (*store.CategoryAnalysis, error) {
	if len(phoneIds) < 2 || len(phoneIds) > 4 {
		return nil, fmt.Errorf("comparison requires between 2 and 4 phones")
	}

	phones, err := s.phones.FindByIds(ctx, phoneIds)
	if err != nil {
		return nil, err
	}
	if len(phones) < 2 {
		return nil, fmt.Errorf("could not find enough of the requested phones to compare")
	}

	var analysis *store.CategoryAnalysis
	err = recovery.Retry(ctx, 3, func(ctx context.Context) error {
		var genErr error
		analysis, genErr = s.generator.CompareAnalysis(ctx, phones)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return analysis, nil
}
