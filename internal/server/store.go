package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"votelyst/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store wraps the database with the poll, voting and results operations.
// Multi-step writes run inside a single transaction so a mid-sequence
// failure cannot leave an orphaned poll or a half-reconciled option set.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

// OptionInput is one option row as submitted by the edit form. ID is empty
// for brand-new options.
type OptionInput struct {
	ID   string
	Text string
}

// normalizeOptions trims the incoming texts, drops empties, and rejects
// duplicates. Comparison is trim-only and case-sensitive.
func normalizeOptions(inputs []OptionInput) ([]OptionInput, error) {
	normalized := make([]OptionInput, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		text := strings.TrimSpace(input.Text)
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			return nil, validationErr("options", "poll options must be unique")
		}
		seen[text] = struct{}{}
		normalized = append(normalized, OptionInput{ID: strings.TrimSpace(input.ID), Text: text})
	}
	if len(normalized) < 2 {
		return nil, validationErr("options", "a poll needs at least two options")
	}
	return normalized, nil
}

func validatePoll(ownerID *string, question string, requiresLogin bool) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", validationErr("question", "question is required")
	}
	if requiresLogin && ownerID == nil {
		return "", validationErr("requires_login", "a private poll needs an owner")
	}
	return question, nil
}

// CreatePoll inserts a poll and its options as one unit.
func (s *Store) CreatePoll(ownerID *string, question, description string, optionTexts []string, requiresLogin bool) (*db.Poll, error) {
	question, err := validatePoll(ownerID, question, requiresLogin)
	if err != nil {
		return nil, err
	}
	inputs := make([]OptionInput, 0, len(optionTexts))
	for _, text := range optionTexts {
		inputs = append(inputs, OptionInput{Text: text})
	}
	options, err := normalizeOptions(inputs)
	if err != nil {
		return nil, err
	}

	poll := &db.Poll{
		ID:            uuid.NewString(),
		UserID:        ownerID,
		Question:      question,
		Description:   strings.TrimSpace(description),
		RequiresLogin: requiresLogin,
	}
	for _, option := range options {
		poll.Options = append(poll.Options, db.PollOption{
			ID:         uuid.NewString(),
			PollID:     poll.ID,
			OptionText: option.Text,
		})
	}

	err = s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Options", "Votes").Create(poll).Error; err != nil {
			return err
		}
		return tx.Create(&poll.Options).Error
	})
	if err != nil {
		return nil, err
	}
	s.recordEvent("poll.created", &poll.ID, ownerID, eventPayload{
		Question:    poll.Question,
		OptionCount: len(poll.Options),
	})
	return poll, nil
}

func orderedOptions(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at ASC, id ASC")
}

// GetPoll fetches a poll and its options.
func (s *Store) GetPoll(pollID string) (*db.Poll, error) {
	var poll db.Poll
	err := s.conn.Preload("Options", orderedOptions).Where("id = ?", pollID).First(&poll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

// UpdatePoll updates the poll row and reconciles its option set: incoming
// options carrying a known id are updated in place, the rest are inserted as
// new rows, and current options missing from the input are deleted. An
// incoming id that matches no current option is stale and discarded; the
// option is treated as new.
func (s *Store) UpdatePoll(pollID, question, description string, options []OptionInput, requiresLogin bool) (*db.Poll, error) {
	current, err := s.GetPoll(pollID)
	if err != nil {
		return nil, err
	}
	question, err = validatePoll(current.UserID, question, requiresLogin)
	if err != nil {
		return nil, err
	}
	incoming, err := normalizeOptions(options)
	if err != nil {
		return nil, err
	}

	currentIDs := make(map[string]struct{}, len(current.Options))
	for _, option := range current.Options {
		currentIDs[option.ID] = struct{}{}
	}

	var toUpdate, toInsert []db.PollOption
	incomingIDs := make(map[string]struct{}, len(incoming))
	for _, option := range incoming {
		if _, exists := currentIDs[option.ID]; option.ID != "" && exists {
			incomingIDs[option.ID] = struct{}{}
			toUpdate = append(toUpdate, db.PollOption{ID: option.ID, PollID: pollID, OptionText: option.Text})
			continue
		}
		toInsert = append(toInsert, db.PollOption{ID: uuid.NewString(), PollID: pollID, OptionText: option.Text})
	}
	var toDelete []string
	for _, option := range current.Options {
		if _, kept := incomingIDs[option.ID]; !kept {
			toDelete = append(toDelete, option.ID)
		}
	}

	err = s.conn.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"question":       question,
			"description":    strings.TrimSpace(description),
			"requires_login": requiresLogin,
		}
		if err := tx.Model(&db.Poll{}).Where("id = ?", pollID).Updates(updates).Error; err != nil {
			return err
		}
		for _, option := range toUpdate {
			err := tx.Model(&db.PollOption{}).Where("id = ? AND poll_id = ?", option.ID, pollID).
				Update("option_text", option.OptionText).Error
			if err != nil {
				return err
			}
		}
		if len(toInsert) > 0 {
			if err := tx.Create(&toInsert).Error; err != nil {
				return err
			}
		}
		if len(toDelete) > 0 {
			if err := tx.Where("poll_id = ? AND id IN ?", pollID, toDelete).Delete(&db.PollOption{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordEvent("poll.updated", &pollID, current.UserID, eventPayload{
		Question:    question,
		OptionCount: len(incoming),
	})
	return s.GetPoll(pollID)
}

// DeletePoll removes a poll; options and votes go with it via ON DELETE
// CASCADE. Ownership is checked by the caller.
func (s *Store) DeletePoll(pollID string) error {
	result := s.conn.Where("id = ?", pollID).Delete(&db.Poll{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.recordEvent("poll.deleted", &pollID, nil, eventPayload{})
	return nil
}

// CastVote records one vote for the voter on the poll. There is no
// read-before-write check for an existing vote; concurrent casts race to
// insert and the unique index picks the winner, so the loser sees
// ErrDuplicateVote.
func (s *Store) CastVote(pollID, optionID string, voter Voter) (*db.Vote, error) {
	if !voter.valid() {
		return nil, validationErr("voter", "exactly one voter identity must be set")
	}
	poll, err := s.GetPoll(pollID)
	if err != nil {
		return nil, err
	}
	if poll.RequiresLogin && !voter.Authenticated() {
		return nil, ErrLoginRequired
	}
	optionOK := false
	for _, option := range poll.Options {
		if option.ID == optionID {
			optionOK = true
			break
		}
	}
	if !optionOK {
		return nil, validationErr("option", "option does not belong to this poll")
	}

	userID, anonID := voter.ids()
	vote := &db.Vote{
		ID:       uuid.NewString(),
		PollID:   pollID,
		OptionID: optionID,
		UserID:   userID,
		AnonID:   anonID,
	}
	if err := s.conn.Create(vote).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateVote
		}
		return nil, err
	}
	s.recordEvent("vote.cast", &pollID, userID, eventPayload{OptionID: optionID})
	return vote, nil
}

// FindVote looks up the voter's existing vote on a poll, used to show the
// prior selection after a duplicate attempt.
func (s *Store) FindVote(pollID string, voter Voter) (*db.Vote, bool) {
	if !voter.valid() {
		return nil, false
	}
	query := s.conn.Where("poll_id = ?", pollID)
	if userID, anonID := voter.ids(); userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("anon_id = ?", *anonID)
	}
	var vote db.Vote
	if err := query.First(&vote).Error; err != nil {
		return nil, false
	}
	return &vote, true
}

// PollResults holds a poll's per-option vote counts. Every option of the
// poll appears in Counts, zero when unvoted.
type PollResults struct {
	Poll       *db.Poll
	Counts     map[string]int
	TotalVotes int
}

// Results aggregates vote counts for a poll.
func (s *Store) Results(pollID string) (*PollResults, error) {
	poll, err := s.GetPoll(pollID)
	if err != nil {
		return nil, err
	}
	type optionCount struct {
		OptionID string
		Total    int
	}
	var rows []optionCount
	err = s.conn.Model(&db.Vote{}).
		Select("option_id, count(*) as total").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	results := &PollResults{
		Poll:   poll,
		Counts: make(map[string]int, len(poll.Options)),
	}
	for _, option := range poll.Options {
		results.Counts[option.ID] = 0
	}
	for _, row := range rows {
		results.Counts[row.OptionID] = row.Total
		results.TotalVotes += row.Total
	}
	return results, nil
}

// Percent derives a display percentage, guarding against a zero total.
func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// ListPolls returns all polls, newest first.
func (s *Store) ListPolls() ([]db.Poll, error) {
	var polls []db.Poll
	err := s.conn.Preload("Options", orderedOptions).Order("created_at DESC").Find(&polls).Error
	return polls, err
}

// ListUserPolls returns the polls owned by a user, newest first.
func (s *Store) ListUserPolls(ownerID string) ([]db.Poll, error) {
	var polls []db.Poll
	err := s.conn.Preload("Options", orderedOptions).Where("user_id = ?", ownerID).
		Order("created_at DESC").Find(&polls).Error
	return polls, err
}

// UserVoteCount counts votes received across all polls owned by a user.
func (s *Store) UserVoteCount(ownerID string) (int, error) {
	var count int64
	err := s.conn.Model(&db.Vote{}).
		Where("poll_id IN (?)", s.conn.Model(&db.Poll{}).Select("id").Where("user_id = ?", ownerID)).
		Count(&count).Error
	return int(count), err
}

// RecentEvents returns the latest activity on a user's polls.
func (s *Store) RecentEvents(ownerID string, limit int) ([]db.Event, error) {
	var events []db.Event
	err := s.conn.
		Where("poll_id IN (?)", s.conn.Model(&db.Poll{}).Select("id").Where("user_id = ?", ownerID)).
		Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// isDuplicateKey recognizes unique-constraint violations. GORM translates
// them to ErrDuplicatedKey when the driver supports it; the message checks
// cover the raw Postgres and sqlite errors otherwise.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := err.Error()
	return strings.Contains(message, "duplicate key value") ||
		strings.Contains(message, "UNIQUE constraint")
}

type eventPayload struct {
	Question    string `json:"question,omitempty"`
	OptionID    string `json:"option_id,omitempty"`
	OptionCount int    `json:"option_count,omitempty"`
}

// recordEvent appends to the activity log. Failures are logged and ignored;
// the log is advisory and never blocks the operation that produced it.
func (s *Store) recordEvent(eventType string, pollID, userID *string, payload eventPayload) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("marshal event payload", "type", eventType, "error", err)
		return
	}
	event := db.Event{
		PollID:  pollID,
		UserID:  userID,
		Type:    eventType,
		Payload: raw,
	}
	if err := s.conn.Create(&event).Error; err != nil {
		slog.Warn("record event", "type", eventType, "error", err)
	}
}
