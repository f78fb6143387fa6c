package study

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"github.com/emandor/studybuddy_service/internal/config"
	"github.com/emandor/studybuddy_service/internal/history"
	"github.com/emandor/studybuddy_service/internal/middleware"
	"github.com/emandor/studybuddy_service/internal/model"
	"github.com/emandor/studybuddy_service/internal/providers"
	"github.com/emandor/studybuddy_service/internal/telemetry"
	"github.com/emandor/studybuddy_service/internal/ws"
)

type Handler struct {
	cfg     *config.Config
	svc     *Service
	history *history.Store
}

func NewHandler(cfg *config.Config, db *sqlx.DB) *Handler {
	client := &providers.Groq{Key: cfg.GroqKey, Model: cfg.GroqModel}
	return &Handler{
		cfg:     cfg,
		svc:     NewService(client),
		history: history.NewStore(db),
	}
}

// Generate builds the endpoint for one generation kind. The four endpoints
// differ only in their descriptor: required field, response key, messages.
func (h *Handler) Generate(kind Kind) fiber.Handler {
	d, ok := DescriptorFor(kind)
	if !ok {
		panic("study: no descriptor for kind " + string(kind))
	}

	return func(c *fiber.Ctx) error {
		rid, _ := c.Locals(middleware.ReqIDKey).(string)
		log := telemetry.L().With().Str("req_id", rid).Str("kind", string(kind)).Logger()

		var body map[string]any
		_ = c.BodyParser(&body)

		subject, _ := body[d.InputField].(string)
		if strings.TrimSpace(subject) == "" {
			return c.Status(400).JSON(fiber.Map{"error": d.MissingMessage})
		}

		count := h.cfg.DefaultItemCount
		if d.CountField != "" {
			if f, ok := body[d.CountField].(float64); ok && int(f) > 0 {
				count = int(f)
			}
		}

		res, err := h.svc.Generate(c.Context(), kind, subject, count)
		if err != nil {
			log.Error().Err(err).Msg("generate_failed")
			msg := err.Error()
			if msg == "" {
				msg = d.FailureMessage
			}
			return c.Status(500).JSON(fiber.Map{"error": msg})
		}

		if uid, ok := middleware.UserID(c); ok {
			recID, err := h.history.Append(c.Context(), uid, string(kind), subject, res.Payload())
			if err != nil {
				// history is best effort; the generation itself succeeded
				log.Warn().Err(err).Int64("user_id", uid).Msg("history_append_failed")
			} else {
				ws.BroadcastGenerated(uid, string(kind))
				ws.BroadcastHistoryAppended(uid, string(kind), recID)
			}
		}

		return c.JSON(fiber.Map{d.ResponseKey: res.Payload()})
	}
}

// ListHistory serves the signed-in user's past generations, newest first. A
// failed fetch reads as "no history", never as a broken view.
func (h *Handler) ListHistory(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "unauthorized"})
	}

	limit := c.QueryInt("limit", h.cfg.HistoryLimit)
	recs, err := h.history.List(c.Context(), uid, limit)
	if err != nil {
		log := telemetry.L()
		log.Error().Err(err).Int64("user_id", uid).Msg("history_list_failed")
		recs = nil
	}
	if recs == nil {
		recs = []model.HistoryRecord{}
	}
	return c.JSON(recs)
}
