package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"notes-service/internal/application/command"
	"notes-service/internal/application/common"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/mapper"
	"notes-service/internal/application/query"
	"notes-service/internal/domain"
	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
	"notes-service/internal/infrastructure"
	"notes-service/internal/logger"
)

// ListCache is the subset of infrastructure.NotesCache the note service uses.
type ListCache interface {
	GetList(ctx context.Context, key string) ([]byte, bool, error)
	PutList(ctx context.Context, key string, value []byte, ttl time.Duration) error
	InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error
}

type NoteService struct {
	noteRepo repositories.NoteRepository
	cache    ListCache
	cacheTTL time.Duration
	metrics  *infrastructure.Metrics
	log      *slog.Logger
}

func NewNoteService(
	noteRepo repositories.NoteRepository,
	cache ListCache,
	cacheTTL time.Duration,
	metrics *infrastructure.Metrics,
	log *slog.Logger,
) interfaces.NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		log:      log.With(slog.String("component", "note_service")),
	}
}

// ListNotes serves the page from the cache when present and fills it on a
// miss. Cache failures fall through to the store.
func (s *NoteService) ListNotes(ctx context.Context, owner *entities.User, listQuery query.ListNotesQuery) (*query.NoteQueryListResult, error) {
	listQuery = listQuery.Normalize()
	key := infrastructure.ListKey(owner.Id, listQuery.Offset, listQuery.Limit, listQuery.Search)

	if results, ok := s.cachedList(ctx, key); ok {
		return &query.NoteQueryListResult{Result: results}, nil
	}

	notes, err := s.noteRepo.List(ctx, owner.Id, repositories.NoteFilter{
		Offset: listQuery.Offset,
		Limit:  listQuery.Limit,
		Search: listQuery.Search,
	})
	if err != nil {
		return nil, err
	}
	results := mapper.NewNoteResultsFromEntities(notes)

	if data, err := json.Marshal(results); err == nil {
		if err := s.cache.PutList(ctx, key, data, s.cacheTTL); err != nil {
			s.cacheFailure("store list", err)
		}
	}

	return &query.NoteQueryListResult{Result: results}, nil
}

func (s *NoteService) cachedList(ctx context.Context, key string) ([]*common.NoteResult, bool) {
	data, hit, err := s.cache.GetList(ctx, key)
	if err != nil {
		s.cacheFailure("read list", err)
		s.countLookup("error")
		return nil, false
	}
	if !hit {
		s.countLookup("miss")
		return nil, false
	}

	var results []*common.NoteResult
	if err := json.Unmarshal(data, &results); err != nil {
		s.log.Warn("discarding undecodable cache entry", slog.String("key", key), logger.Err(err))
		s.countLookup("error")
		return nil, false
	}
	s.countLookup("hit")
	return results, true
}

func (s *NoteService) CreateNote(ctx context.Context, owner *entities.User, createCommand *command.CreateNoteCommand) (*command.NoteCommandResult, error) {
	note, err := entities.NewNote(owner.Id, createCommand.Title, createCommand.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, owner.Id)

	return &command.NoteCommandResult{Result: mapper.NewNoteResultFromEntity(created)}, nil
}

func (s *NoteService) GetNote(ctx context.Context, owner *entities.User, id uuid.UUID) (*query.NoteQueryResult, error) {
	note, err := s.noteRepo.Get(ctx, id, owner.Id)
	if err != nil {
		return nil, err
	}
	return &query.NoteQueryResult{Result: mapper.NewNoteResultFromEntity(note)}, nil
}

// UpdateNote applies the supplied fields. An update without fields returns the
// note unchanged and leaves the cache alone.
func (s *NoteService) UpdateNote(ctx context.Context, owner *entities.User, updateCommand *command.UpdateNoteCommand) (*command.NoteCommandResult, error) {
	patch := entities.NoteUpdate{Title: updateCommand.Title, Content: updateCommand.Content}
	if patch.IsEmpty() {
		note, err := s.noteRepo.Get(ctx, updateCommand.Id, owner.Id)
		if err != nil {
			return nil, err
		}
		return &command.NoteCommandResult{Result: mapper.NewNoteResultFromEntity(note)}, nil
	}

	note, err := s.noteRepo.Update(ctx, updateCommand.Id, owner.Id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, owner.Id)

	return &command.NoteCommandResult{Result: mapper.NewNoteResultFromEntity(note)}, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, owner *entities.User, id uuid.UUID) (*command.NoteCommandResult, error) {
	note, err := s.noteRepo.Delete(ctx, id, owner.Id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, owner.Id)

	return &command.NoteCommandResult{Result: mapper.NewNoteResultFromEntity(note)}, nil
}

// invalidate runs after the store has committed. The write already succeeded,
// so a failure here is reported and the entry ages out with its TTL.
func (s *NoteService) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.InvalidateOwner(ctx, ownerID); err != nil {
		s.cacheFailure("invalidate owner", err)
	}
}

func (s *NoteService) cacheFailure(op string, err error) {
	s.log.Error("note cache failure", slog.String("op", op), logger.Err(err))
	if s.metrics != nil {
		s.metrics.BackendFailures.WithLabelValues(infrastructure.ComponentCache).Inc()
	}
}

func (s *NoteService) countLookup(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
