package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	engine "github.com/m04kA/SMC-SitterAvailability/internal/availability"
	"github.com/m04kA/SMC-SitterAvailability/internal/domain"
	auditRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/audit"
	configRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/config"
	exceptionRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/exceptions"
	auditService "github.com/m04kA/SMC-SitterAvailability/internal/service/audit"
	"github.com/m04kA/SMC-SitterAvailability/internal/service/availability/models"
	"github.com/m04kA/SMC-SitterAvailability/pkg/ptr"
)

// Service сервис изменения доступности ситтера
// Каждое успешное изменение записывается в журнал; ошибка журнала изменение не откатывает
type Service struct {
	configRepo    ConfigRepository
	ruleRepo      RuleRepository
	exceptionRepo ExceptionRepository
	auditRepo     AuditRepository
	recorder      AuditRecorder
	txManager     TxManager
	policy        domain.Policy
	adminIDs      map[string]struct{}
	logger        Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	configRepo ConfigRepository,
	ruleRepo RuleRepository,
	exceptionRepo ExceptionRepository,
	auditRepo AuditRepository,
	recorder AuditRecorder,
	txManager TxManager,
	policy domain.Policy,
	adminIDs []string,
	logger Logger,
) *Service {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if parsed, err := uuid.Parse(strings.TrimSpace(id)); err == nil {
			admins[parsed.String()] = struct{}{}
		}
	}

	return &Service{
		configRepo:    configRepo,
		ruleRepo:      ruleRepo,
		exceptionRepo: exceptionRepo,
		auditRepo:     auditRepo,
		recorder:      recorder,
		txManager:     txManager,
		policy:        policy,
		adminIDs:      admins,
		logger:        logger,
	}
}

// GetConfig возвращает действующие настройки услуги
// Если ситтер ничего не сохранял, возвращаются значения по умолчанию с IsDefault=true
func (s *Service) GetConfig(ctx context.Context, req *models.GetConfigRequest) (*models.EffectiveConfigResponse, error) {
	sitterID, err := validateSitter(req.SitterID)
	if err != nil {
		s.logger.Warn("GetConfig: validation failed: %v", err)
		return nil, err
	}

	serviceType, err := validateServiceType(req.ServiceType)
	if err != nil {
		s.logger.Warn("GetConfig: validation failed: %v", err)
		return nil, err
	}

	cfg, err := s.configRepo.GetConfig(ctx, sitterID, serviceType)
	if errors.Is(err, configRepo.ErrConfigNotFound) {
		defaults := s.policy.ConfigFor(sitterID, serviceType)
		return &models.EffectiveConfigResponse{Config: defaults, IsDefault: true}, nil
	}
	if err != nil {
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return &models.EffectiveConfigResponse{Config: *cfg}, nil
}

// UpsertConfig создает или обновляет настройки услуги
func (s *Service) UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpsertConfig: sitter=%s, service=%s by actor=%s", req.SitterID, req.ServiceType, req.ActorID)

	sitterID, serviceType, err := s.authorize("UpsertConfig", req.ActorID, req.SitterID, req.ServiceType)
	if err != nil {
		return nil, err
	}

	current, err := s.configRepo.GetConfig(ctx, sitterID, serviceType)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("UpsertConfig: failed to get current config: %v", err)
		return nil, fmt.Errorf("%w: UpsertConfig - get config: %v", ErrInternal, err)
	}
	if current == nil {
		defaults := s.policy.ConfigFor(sitterID, serviceType)
		current = &defaults
	}

	cfg := *current
	cfg.SitterID = sitterID
	cfg.ServiceType = serviceType
	cfg.Timezone = ptr.Value(req.Timezone, cfg.Timezone)
	cfg.DefaultDurationMinutes = ptr.Value(req.DefaultDurationMinutes, cfg.DefaultDurationMinutes)
	cfg.LeadTimeMinutes = ptr.Value(req.LeadTimeMinutes, cfg.LeadTimeMinutes)
	cfg.MaxAdvanceDays = ptr.Value(req.MaxAdvanceDays, cfg.MaxAdvanceDays)
	cfg.Capacity = ptr.Value(req.Capacity, cfg.Capacity)

	if err := validateConfigData(&cfg); err != nil {
		s.logger.Warn("UpsertConfig: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, &cfg)
	if err != nil {
		s.logger.Error("UpsertConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertConfig - repository error: %v", ErrInternal, err)
	}

	audited := s.record(ctx, auditService.Event{
		SitterID:    sitterID,
		ActorID:     req.ActorID,
		Action:      domain.AuditUpsertConfig,
		ServiceType: ptr.Ptr(serviceType),
		Payload: map[string]interface{}{
			"timezone":               saved.Timezone,
			"defaultDurationMinutes": saved.DefaultDurationMinutes,
			"leadTimeMinutes":        saved.LeadTimeMinutes,
			"maxAdvanceDays":         saved.MaxAdvanceDays,
			"capacity":               saved.Capacity,
		},
	})

	s.logger.Info("UpsertConfig: saved config sitter=%s, service=%s", sitterID, serviceType)
	return &models.ConfigResponse{Config: *saved, Audited: audited}, nil
}

// ReplaceRules заменяет недельное правило на один день недели
// Пустой набор интервалов означает, что в этот день ситтер недоступен
func (s *Service) ReplaceRules(ctx context.Context, req *models.ReplaceRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("ReplaceRules: sitter=%s, service=%s, weekday=%s by actor=%s",
		req.SitterID, req.ServiceType, req.Weekday, req.ActorID)

	sitterID, serviceType, err := s.authorize("ReplaceRules", req.ActorID, req.SitterID, req.ServiceType)
	if err != nil {
		return nil, err
	}

	weekday, err := parseWeekday(req.Weekday)
	if err != nil {
		s.logger.Warn("ReplaceRules: validation failed: %v", err)
		return nil, err
	}

	ranges, err := engine.NormalizeRanges(req.Ranges)
	if err != nil {
		s.logger.Warn("ReplaceRules: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRanges, err)
	}

	rule := domain.WeeklyRule{
		SitterID:    sitterID,
		ServiceType: serviceType,
		Weekday:     weekday,
		Ranges:      ranges,
	}

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		return s.ruleRepo.ReplaceWeekday(ctx, rule)
	})
	if err != nil {
		s.logger.Error("ReplaceRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReplaceRules - repository error: %v", ErrInternal, err)
	}

	audited := s.record(ctx, auditService.Event{
		SitterID:    sitterID,
		ActorID:     req.ActorID,
		Action:      domain.AuditReplaceRules,
		ServiceType: ptr.Ptr(serviceType),
		Payload: map[string]interface{}{
			"weekday": strings.ToLower(weekday.String()),
			"ranges":  ranges,
		},
	})

	s.logger.Info("ReplaceRules: saved %d ranges for sitter=%s, service=%s, weekday=%s",
		len(ranges), sitterID, serviceType, weekday)
	return &models.RulesResponse{Rule: rule, Audited: audited}, nil
}

// UpsertException создает или заменяет исключение на дату
func (s *Service) UpsertException(ctx context.Context, req *models.UpsertExceptionRequest) (*models.ExceptionResponse, error) {
	s.logger.Info("UpsertException: sitter=%s, service=%s, date=%s by actor=%s",
		req.SitterID, req.ServiceType, req.Date, req.ActorID)

	sitterID, serviceType, err := s.authorize("UpsertException", req.ActorID, req.SitterID, req.ServiceType)
	if err != nil {
		return nil, err
	}

	if err := validateDate(req.Date); err != nil {
		s.logger.Warn("UpsertException: validation failed: %v", err)
		return nil, err
	}

	if len([]rune(req.Note)) > domain.MaxNoteLength {
		s.logger.Warn("UpsertException: note is too long")
		return nil, fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	ranges := []domain.TimeRange{}
	if !req.Blocked {
		ranges, err = engine.NormalizeRanges(req.Ranges)
		if err != nil {
			s.logger.Warn("UpsertException: validation failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidRanges, err)
		}
	}

	saved, err := s.exceptionRepo.Upsert(ctx, &domain.DateException{
		SitterID:    sitterID,
		ServiceType: serviceType,
		Date:        req.Date,
		Blocked:     req.Blocked || len(ranges) == 0,
		Ranges:      ranges,
		Note:        req.Note,
	})
	if err != nil {
		s.logger.Error("UpsertException: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertException - repository error: %v", ErrInternal, err)
	}

	audited := s.record(ctx, auditService.Event{
		SitterID:    sitterID,
		ActorID:     req.ActorID,
		Action:      domain.AuditUpsertException,
		ServiceType: ptr.Ptr(serviceType),
		DateKey:     ptr.Ptr(req.Date),
		Payload: map[string]interface{}{
			"blocked": saved.Blocked,
			"ranges":  saved.Ranges,
			"note":    saved.Note,
		},
	})

	s.logger.Info("UpsertException: saved exception sitter=%s, service=%s, date=%s", sitterID, serviceType, req.Date)
	return &models.ExceptionResponse{Exception: *saved, Audited: audited}, nil
}

// DeleteException удаляет исключение на дату
// Удаление несуществующего исключения не ошибка и тоже попадает в журнал
func (s *Service) DeleteException(ctx context.Context, req *models.DeleteExceptionRequest) (*models.DeleteExceptionResponse, error) {
	s.logger.Info("DeleteException: sitter=%s, service=%s, date=%s by actor=%s",
		req.SitterID, req.ServiceType, req.Date, req.ActorID)

	sitterID, serviceType, err := s.authorize("DeleteException", req.ActorID, req.SitterID, req.ServiceType)
	if err != nil {
		return nil, err
	}

	if err := validateDate(req.Date); err != nil {
		s.logger.Warn("DeleteException: validation failed: %v", err)
		return nil, err
	}

	deleted := true
	err = s.exceptionRepo.Delete(ctx, sitterID, serviceType, req.Date)
	if errors.Is(err, exceptionRepo.ErrExceptionNotFound) {
		s.logger.Info("DeleteException: nothing to delete for sitter=%s, service=%s, date=%s", sitterID, serviceType, req.Date)
		deleted = false
		err = nil
	}
	if err != nil {
		s.logger.Error("DeleteException: repository error: %v", err)
		return nil, fmt.Errorf("%w: DeleteException - repository error: %v", ErrInternal, err)
	}

	audited := s.record(ctx, auditService.Event{
		SitterID:    sitterID,
		ActorID:     req.ActorID,
		Action:      domain.AuditDeleteException,
		ServiceType: ptr.Ptr(serviceType),
		DateKey:     ptr.Ptr(req.Date),
		Payload:     map[string]interface{}{"existed": deleted},
	})

	return &models.DeleteExceptionResponse{Deleted: deleted, Audited: audited}, nil
}

// ListAudit возвращает журнал изменений ситтера от новых к старым
func (s *Service) ListAudit(ctx context.Context, req *models.ListAuditRequest) ([]domain.AuditEntry, error) {
	s.logger.Info("ListAudit: sitter=%s by actor=%s", req.SitterID, req.ActorID)

	sitterID, err := validateSitter(req.SitterID)
	if err != nil {
		s.logger.Warn("ListAudit: validation failed: %v", err)
		return nil, err
	}

	if !s.canManage(req.ActorID, sitterID) {
		s.logger.Warn("ListAudit: actor=%s cannot read audit of sitter=%s", req.ActorID, sitterID)
		return nil, ErrAccessDenied
	}

	filter := auditRepo.Filter{
		SitterID: sitterID,
		Limit:    clampAuditLimit(req.Limit),
	}
	if req.ServiceType != nil && *req.ServiceType != "" {
		st, err := validateServiceType(*req.ServiceType)
		if err != nil {
			s.logger.Warn("ListAudit: validation failed: %v", err)
			return nil, err
		}
		filter.ServiceType = &st
	}

	entries, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListAudit: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAudit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAudit: found %d entries for sitter=%s", len(entries), sitterID)
	return entries, nil
}

// authorize проверяет ситтера, тип услуги и права автора
func (s *Service) authorize(op, actorID, rawSitterID, rawServiceType string) (string, domain.ServiceType, error) {
	sitterID, err := validateSitter(rawSitterID)
	if err != nil {
		s.logger.Warn("%s: validation failed: %v", op, err)
		return "", "", err
	}

	serviceType, err := validateServiceType(rawServiceType)
	if err != nil {
		s.logger.Warn("%s: validation failed: %v", op, err)
		return "", "", err
	}

	if !s.canManage(actorID, sitterID) {
		s.logger.Warn("%s: actor=%q cannot manage sitter=%s", op, actorID, sitterID)
		return "", "", ErrAccessDenied
	}

	return sitterID, serviceType, nil
}

// canManage возвращает true, если автор - сам ситтер или администратор
func (s *Service) canManage(actorID, sitterID string) bool {
	actor, err := uuid.Parse(strings.TrimSpace(actorID))
	if err != nil {
		return false
	}
	if actor.String() == sitterID {
		return true
	}
	_, ok := s.adminIDs[actor.String()]
	return ok
}

// record пишет событие в журнал; ошибка журнала не влияет на результат изменения
func (s *Service) record(ctx context.Context, event auditService.Event) bool {
	audited, err := s.recorder.Record(ctx, event)
	if err != nil {
		s.logger.Warn("%s: audit entry was not recorded: %v", event.Action, err)
	}
	return audited
}
