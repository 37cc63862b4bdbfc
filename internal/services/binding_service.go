package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/models"
	apperrors "github.com/lucassmelendez/ct-backend/pkg/errors"
	"github.com/lucassmelendez/ct-backend/pkg/metrics"
)

const (
	defaultBindingExpiry = time.Hour
	bindingCodeBytes     = 3
	maxCodeAttempts      = 20
)

// Binding kinds accepted by the service. The kind determines which role a
// redeeming user must hold.
const (
	BindingKindWorker       = "trabajador"
	BindingKindVeterinarian = "veterinario"
)

var (
	// ErrBindingCodeNotFound indicates no active code matches the provided value.
	ErrBindingCodeNotFound = apperrors.NewNotFound("Binding code is invalid or expired")
	// ErrBindingCodeInUse signals a concurrent redemption already claimed the code.
	ErrBindingCodeInUse = apperrors.New("BINDING_CODE_IN_USE", "Binding code is being redeemed", 409)
	// ErrBindingRoleMismatch signals the user's role does not match the code kind.
	ErrBindingRoleMismatch = apperrors.New("BINDING_ROLE_MISMATCH", "User role does not match the binding code", 403)
	// ErrBindingCodeExhausted signals code generation could not find a free value.
	ErrBindingCodeExhausted = apperrors.New("BINDING_CODE_EXHAUSTED", "Could not generate a unique binding code", 409)
)

// BindingCode is an active farm-invitation code held in process.
type BindingCode struct {
	Code      string    `json:"codigo"`
	FarmID    uint      `json:"idFinca"`
	Kind      string    `json:"tipo"`
	CreatedAt time.Time `json:"creadoEn"`
	ExpiresAt time.Time `json:"expiraEn"`

	// reserved marks a code claimed by an in-flight redemption so a second
	// caller cannot redeem it while the membership write is in progress.
	reserved bool
}

// BindingRedemption is the outcome of a successful code redemption.
type BindingRedemption struct {
	UserID     uint              `json:"idUsuario"`
	FarmID     uint              `json:"idFinca"`
	Kind       string            `json:"tipo"`
	Membership models.FarmMember `json:"vinculacion"`
}

// BindingOption customises BindingService behaviour.
type BindingOption func(*BindingService)

// WithBindingExpiry overrides the default code lifetime.
func WithBindingExpiry(d time.Duration) BindingOption {
	return func(s *BindingService) {
		if d > 0 {
			s.expiry = d
		}
	}
}

// WithBindingClock injects a custom clock primarily for testing.
func WithBindingClock(clock func() time.Time) BindingOption {
	return func(s *BindingService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// BindingService issues short-lived farm-binding codes and links users to
// farms when a code is redeemed. Codes live only in process memory; expiry is
// lazy, with a periodic sweep reclaiming entries nobody touches.
type BindingService struct {
	db     *gorm.DB
	expiry time.Duration
	now    func() time.Time

	mu    sync.Mutex
	codes map[string]*BindingCode
}

// NewBindingService constructs a BindingService with the provided dependencies.
func NewBindingService(db *gorm.DB, opts ...BindingOption) (*BindingService, error) {
	if db == nil {
		return nil, errors.New("binding service: db is required")
	}

	service := &BindingService{
		db:     db,
		expiry: defaultBindingExpiry,
		now:    time.Now,
		codes:  make(map[string]*BindingCode),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Issue creates a new binding code for a farm. duration<=0 falls back to the
// configured default lifetime.
func (s *BindingService) Issue(ctx context.Context, farmID uint, kind string, duration time.Duration) (*BindingCode, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if _, err := roleForKind(kind); err != nil {
		return nil, err
	}
	if farmID == 0 {
		return nil, apperrors.NewBadRequest("Farm id is required")
	}

	var farm models.Farm
	if err := s.db.WithContext(ctx).First(&farm, farmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Farm not found")
		}
		return nil, fmt.Errorf("binding service: find farm: %w", err)
	}

	if duration <= 0 {
		duration = s.expiry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.generateCodeLocked()
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := &BindingCode{
		Code:      code,
		FarmID:    farmID,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}
	s.codes[code] = entry

	metrics.BindingCodes.WithLabelValues("issued").Inc()

	out := *entry
	return &out, nil
}

// Redeem consumes a binding code on behalf of a user, creating the farm
// membership. The code stays active when the user's role does not match the
// code kind; it is removed only after the membership write succeeds.
func (s *BindingService) Redeem(ctx context.Context, code string, userID uint) (*BindingRedemption, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperrors.NewBadRequest("Binding code is required")
	}

	entry, err := s.reserve(code)
	if err != nil {
		return nil, err
	}

	requiredRole, err := roleForKind(entry.Kind)
	if err != nil {
		s.release(entry)
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		s.release(entry)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("binding service: find user: %w", err)
	}

	if user.RoleID != requiredRole {
		s.release(entry)
		metrics.BindingCodes.WithLabelValues("rejected").Inc()
		return nil, ErrBindingRoleMismatch
	}

	member := models.FarmMember{UserID: user.ID, FarmID: entry.FarmID}
	if err := s.db.WithContext(ctx).
		Where("id_usuario = ? AND id_finca = ?", user.ID, entry.FarmID).
		FirstOrCreate(&member).Error; err != nil {
		s.release(entry)
		return nil, fmt.Errorf("binding service: create membership: %w", err)
	}

	s.remove(entry)
	metrics.BindingCodes.WithLabelValues("redeemed").Inc()

	return &BindingRedemption{
		UserID:     user.ID,
		FarmID:     entry.FarmID,
		Kind:       entry.Kind,
		Membership: member,
	}, nil
}

// ListActive returns the farm's codes that have not yet expired.
func (s *BindingService) ListActive(farmID uint) []BindingCode {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]BindingCode, 0)
	for code, entry := range s.codes {
		// A reserved entry belongs to an in-flight redemption; only that
		// redemption may remove it, even past its expiry.
		if entry.reserved {
			continue
		}
		if !entry.ExpiresAt.After(now) {
			delete(s.codes, code)
			metrics.BindingCodes.WithLabelValues("expired").Inc()
			continue
		}
		if entry.FarmID != farmID {
			continue
		}
		active = append(active, *entry)
	}
	return active
}

// Revoke removes a code before its expiry. The code must belong to the given
// farm; unknown, expired or mismatched codes report not found.
func (s *BindingService) Revoke(code string, farmID uint) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[code]
	if !ok || !entry.ExpiresAt.After(s.now()) {
		delete(s.codes, code)
		return ErrBindingCodeNotFound
	}
	if entry.FarmID != farmID {
		return ErrBindingCodeNotFound
	}

	delete(s.codes, code)
	metrics.BindingCodes.WithLabelValues("revoked").Inc()
	return nil
}

// SweepExpired drops every expired code that is not mid-redemption,
// returning how many were removed.
func (s *BindingService) SweepExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for code, entry := range s.codes {
		if entry.reserved || entry.ExpiresAt.After(now) {
			continue
		}
		delete(s.codes, code)
		removed++
	}
	if removed > 0 {
		metrics.BindingCodes.WithLabelValues("expired").Add(float64(removed))
	}
	return removed
}

// reserve claims a code for an in-flight redemption. Expired codes are
// removed on the spot, and a code already reserved by another redemption
// reports a conflict.
func (s *BindingService) reserve(code string) (*BindingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[code]
	if !ok {
		return nil, ErrBindingCodeNotFound
	}
	if entry.reserved {
		return nil, ErrBindingCodeInUse
	}
	if !entry.ExpiresAt.After(s.now()) {
		delete(s.codes, code)
		metrics.BindingCodes.WithLabelValues("expired").Inc()
		return nil, ErrBindingCodeNotFound
	}

	entry.reserved = true
	return entry, nil
}

// release clears a reservation after a failed redemption so the code can be
// redeemed again.
func (s *BindingService) release(entry *BindingCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.reserved = false
}

// remove finalizes a successful redemption. The map slot is deleted only
// while it still holds this entry; a slot reissued under the same code value
// must survive.
func (s *BindingService) remove(entry *BindingCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.codes[entry.Code]; ok && current == entry {
		delete(s.codes, entry.Code)
	}
}

// generateCodeLocked produces a six-character uppercase hex code, retrying on
// collision with the live set. The caller must hold s.mu.
func (s *BindingService) generateCodeLocked() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		buf := make([]byte, bindingCodeBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("binding service: generate code: %w", err)
		}
		code := strings.ToUpper(hex.EncodeToString(buf))
		if _, exists := s.codes[code]; !exists {
			return code, nil
		}
	}
	return "", ErrBindingCodeExhausted
}

func roleForKind(kind string) (uint, error) {
	switch kind {
	case BindingKindWorker:
		return models.RoleWorker, nil
	case BindingKindVeterinarian:
		return models.RoleVeterinarian, nil
	default:
		return 0, apperrors.NewBadRequest("Binding kind must be trabajador or veterinario")
	}
}
