package course

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/scormkit/internal/logging"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/ports"
	"github.com/aretw0/scormkit/pkg/session"
	"github.com/aretw0/scormkit/pkg/suspend"
)

// Placeholder identity reported while disconnected.
const (
	DefaultStudentName = "John Doe"
	DefaultStudentID   = "john.doe@company.com"
)

// Snapshot is a read-only view of the client state.
type Snapshot struct {
	Connected   bool           `json:"connected"`
	Version     string         `json:"version"`
	ConnectRuns int            `json:"connect_runs"`
	Location    int            `json:"location"`
	SuspendData string         `json:"suspend_data"`
	Result      session.Result `json:"result"`
}

// Client is the course-facing facade over a runtime session.
// It is not safe for concurrent use.
type Client struct {
	manager *session.Manager
	storage ports.Storage
	codec   suspend.Codec
	config  session.Config
	logger  *slog.Logger

	studentName string
	studentID   string

	dialect      *domain.Dialect
	connected    bool
	connectRuns  int
	result       session.Result
	location     int
	suspendData  string
	interactions []domain.Interaction
}

// Option configures the Client.
type Option func(*Client)

// WithLogger configures a logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithConfig sets the session configuration applied on Connect.
func WithConfig(cfg session.Config) Option {
	return func(c *Client) {
		c.config = cfg
	}
}

// WithCodec replaces the suspend data codec (default suspend.Substitution).
func WithCodec(codec suspend.Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithInteractions replaces the seeded interaction set.
func WithInteractions(set []domain.Interaction) Option {
	return func(c *Client) {
		c.interactions = cloneInteractions(set)
	}
}

// WithPlaceholderIdentity sets the learner name and ID reported while disconnected.
func WithPlaceholderIdentity(name, id string) Option {
	return func(c *Client) {
		c.studentName = name
		c.studentID = id
	}
}

// NewClient creates a Client over manager, falling back to storage while disconnected.
func NewClient(manager *session.Manager, storage ports.Storage, opts ...Option) *Client {
	c := &Client{
		manager:      manager,
		storage:      storage,
		codec:        suspend.Substitution{},
		config:       session.Config{Version: session.DefaultVersion},
		logger:       logging.NewNop(),
		studentName:  DefaultStudentName,
		studentID:    DefaultStudentID,
		interactions: domain.DefaultInteractions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect configures and initializes the session. It is idempotent while connected.
func (c *Client) Connect() session.Result {
	if c.connected {
		c.logger.Info("course: already connected", "version", c.dialect.String())
		return c.result
	}

	if err := c.manager.Configure(c.config); err != nil {
		c.logger.Error("course: invalid session configuration", "err", err)
	}
	res := c.manager.Initialize()

	c.result = res
	c.connectRuns++
	c.connected = res.Success
	c.dialect = c.manager.Dialect()

	c.logger.Info("course: connect", "success", res.Success, "version", res.Version, "attempt", c.connectRuns)
	return res
}

// ReconnectIfNeeded connects if no connect attempt has been made yet.
func (c *Client) ReconnectIfNeeded() {
	if c.connectRuns == 0 {
		c.logger.Info("course: not connected, connecting")
		c.Connect()
	}
}

// Connected reports whether writes currently reach the LMS.
func (c *Client) Connected() bool {
	return c.connected
}

// Snapshot returns the current client state.
func (c *Client) Snapshot() Snapshot {
	return Snapshot{
		Connected:   c.connected,
		Version:     c.dialect.String(),
		ConnectRuns: c.connectRuns,
		Location:    c.location,
		SuspendData: c.suspendData,
		Result:      c.result,
	}
}

// Location returns the bookmarked location, 0 when none is stored.
func (c *Client) Location(ctx context.Context) int {
	var raw string
	if c.connected {
		raw, _ = c.manager.Get(c.dialect.Keys.Location)
	} else {
		raw = c.item(ctx, domain.KeyBookmark)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// SuspendData decodes the stored suspend data into dst.
// It returns false when nothing is stored or the data cannot be decoded.
func (c *Client) SuspendData(ctx context.Context, dst any) bool {
	if c.connected {
		raw, _ := c.manager.Get(c.dialect.Keys.SuspendData)
		return c.decode(raw, dst)
	}

	if raw := c.item(ctx, domain.KeySuspendDataStr); raw != "" {
		return c.decode(raw, dst)
	}
	raw := c.item(ctx, domain.KeySuspendData)
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.logger.Error("course: failed to parse suspend data", "err", err)
		return false
	}
	return true
}

func (c *Client) decode(raw string, dst any) bool {
	if raw == "" {
		return false
	}
	if err := c.codec.Decode(raw, dst); err != nil {
		c.logger.Error("course: failed to parse suspend data", "codec", c.codec.Name(), "err", err)
		return false
	}
	return true
}

// StudentName returns the learner name, or the placeholder while disconnected.
func (c *Client) StudentName() string {
	if !c.connected {
		return c.studentName
	}
	v, _ := c.manager.Get(c.dialect.Keys.LearnerName)
	return v
}

// StudentID returns the learner ID, or the placeholder while disconnected.
func (c *Client) StudentID() string {
	if !c.connected {
		return c.studentID
	}
	v, _ := c.manager.Get(c.dialect.Keys.LearnerID)
	return v
}

// Score returns the raw score recorded on the LMS.
func (c *Client) Score() (float64, bool) {
	if !c.connected {
		return 0, false
	}
	raw, ok := c.manager.Get(c.dialect.Keys.ScoreRaw)
	if !ok || raw == "" {
		return 0, false
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

// SetLocation bookmarks loc and, when suspendData is non-nil, saves it in the same call.
func (c *Client) SetLocation(ctx context.Context, loc int, suspendData any) error {
	c.ReconnectIfNeeded()

	value := strconv.Itoa(loc)
	if c.connected {
		c.manager.Set(c.dialect.Keys.Location, value)
	} else {
		c.setItem(ctx, domain.KeyBookmark, value)
	}
	c.location = loc

	if suspendData != nil {
		if err := c.SetSuspendData(ctx, suspendData); err != nil {
			return err
		}
	}

	c.setItem(ctx, domain.KeyBookmarkLocation, value)
	c.commit()
	return nil
}

// SetSuspendData encodes v into the suspend data channel.
// Under SCORM 1.2 it fails with domain.ErrSuspendDataTooLarge past 4096 characters.
func (c *Client) SetSuspendData(ctx context.Context, v any) error {
	c.ReconnectIfNeeded()

	encoded, err := c.codec.Encode(v)
	if err != nil {
		return err
	}
	if err := suspend.CheckLimit(c.dialect, encoded); err != nil {
		return err
	}

	if c.connected {
		c.manager.Set(c.dialect.Keys.SuspendData, encoded)
	}

	c.setItem(ctx, domain.KeySuspendDataStr, encoded)
	if plain, err := suspend.Marshal(v); err == nil {
		c.setItem(ctx, domain.KeySuspendData, string(plain))
	}
	c.suspendData = encoded
	c.commit()
	return nil
}

// SetComplete marks the course completed.
func (c *Client) SetComplete() bool {
	c.ReconnectIfNeeded()
	if !c.connected {
		c.logNotConnected("set complete")
		return false
	}
	if !c.manager.SetStatus(domain.StatusCompleted) {
		return false
	}
	return c.manager.Commit()
}

// SetScore records score with the fixed 0..100 range.
func (c *Client) SetScore(score float64) bool {
	c.ReconnectIfNeeded()
	if !c.connected {
		c.logNotConnected("set score")
		return false
	}
	k := c.dialect.Keys
	ok := c.writeScore(k.ScoreMin, k.ScoreMax, k.ScoreRaw, score)
	return c.manager.Commit() && ok
}

// SetObjectiveScore records score for the objective at index.
func (c *Client) SetObjectiveScore(index int, id string, score float64) bool {
	c.ReconnectIfNeeded()
	if !c.connected {
		c.logNotConnected("set objective score")
		return false
	}
	d := c.dialect
	ok := c.manager.Set(d.ObjectiveKey(index, "id"), id)
	ok = c.writeScore(
		d.ObjectiveKey(index, "score.min"),
		d.ObjectiveKey(index, "score.max"),
		d.ObjectiveKey(index, "score.raw"),
		score,
	) && ok
	return c.manager.Commit() && ok
}

// SetObjectiveProgress records a percentage (0..100) as a progress measure in [0,1].
func (c *Client) SetObjectiveProgress(index int, id string, percent float64) bool {
	c.ReconnectIfNeeded()
	if !c.connected {
		c.logNotConnected("set objective progress")
		return false
	}
	d := c.dialect
	ok := c.manager.Set(d.ObjectiveKey(index, "id"), id)
	ok = c.manager.Set(d.ObjectiveKey(index, "progress_measure"), formatNumber(ProgressMeasure(percent))) && ok
	return c.manager.Commit() && ok
}

// ProgressMeasure converts a percentage to a fraction rounded to two decimals and clamped to [0,1].
func ProgressMeasure(percent float64) float64 {
	p := math.Round(percent) / 100
	return math.Min(1, math.Max(0, p))
}

// RecordInteraction writes the interaction at index to the LMS and commits.
// Fields are written in order and writing stops at the first failure; fields
// already written are still committed.
func (c *Client) RecordInteraction(index int) bool {
	c.ReconnectIfNeeded()
	if index < 0 || index >= len(c.interactions) {
		c.logger.Warn("course: interaction index out of range", "index", index)
		return false
	}
	if !c.connected {
		c.logNotConnected("record interaction")
		return false
	}

	rec := c.interactions[index]
	d := c.dialect
	fields := []struct{ name, value string }{
		{"id", rec.ID},
		{"type", rec.QuestionType},
		{"learner_response", rec.LearnerResponse},
		{"correct_responses.0.pattern", rec.CorrectAnswer},
		{"result", d.Result(rec.WasCorrect)},
		{"objectives.0.id", rec.ObjectiveID},
	}

	ok := true
	for _, f := range fields {
		if !c.manager.Set(d.InteractionKey(index, f.name), f.value) {
			c.logger.Warn("course: interaction partially recorded", "index", index, "field", f.name)
			ok = false
			break
		}
	}
	return c.manager.Commit() && ok
}

// SetInteraction records the learner's response to the interaction at index.
// Out-of-range indexes are ignored.
func (c *Client) SetInteraction(index int, learnerResponse string) {
	if index < 0 || index >= len(c.interactions) {
		return
	}
	c.interactions[index].Answer(learnerResponse)
}

// Interactions returns a copy of the interaction set.
func (c *Client) Interactions() []domain.Interaction {
	return cloneInteractions(c.interactions)
}

// Terminate closes the LMS session.
func (c *Client) Terminate() bool {
	c.ReconnectIfNeeded()
	if !c.connected {
		c.logNotConnected("terminate")
		return false
	}
	if !c.manager.Terminate() {
		return false
	}
	c.connected = false
	return true
}

func (c *Client) writeScore(minKey, maxKey, rawKey string, score float64) bool {
	ok := c.manager.Set(minKey, domain.ScoreMin)
	ok = c.manager.Set(maxKey, domain.ScoreMax) && ok
	return c.manager.Set(rawKey, formatNumber(score)) && ok
}

func (c *Client) commit() {
	if c.connected {
		c.manager.Commit()
	}
}

func (c *Client) item(ctx context.Context, key string) string {
	v, err := c.storage.GetItem(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrItemNotFound) {
			c.logger.Warn("course: fallback storage read failed", "key", key, "err", err)
		}
		return ""
	}
	return v
}

func (c *Client) setItem(ctx context.Context, key, value string) {
	if err := c.storage.SetItem(ctx, key, value); err != nil {
		c.logger.Warn("course: fallback storage write failed", "key", key, "err", err)
	}
}

func (c *Client) logNotConnected(op string) {
	c.logger.Warn("course: SCORM not connected", "op", op)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func cloneInteractions(set []domain.Interaction) []domain.Interaction {
	out := make([]domain.Interaction, len(set))
	for i, rec := range set {
		out[i] = rec.Clone()
	}
	return out
}
