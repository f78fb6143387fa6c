package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/emandor/studybuddy_service/internal/config"
	"github.com/emandor/studybuddy_service/internal/middleware"
	"github.com/emandor/studybuddy_service/internal/telemetry"
)

type Registry struct {
	cfg   *config.Config
	db    *sqlx.DB
	rdb   *redis.Client
	oauth *oauth2.Config
}

func NewRegistry(cfg *config.Config, db *sqlx.DB, rdb *redis.Client) *Registry {
	return &Registry{
		cfg: cfg, db: db, rdb: rdb,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (r *Registry) Rdb() *redis.Client { return r.rdb }

func (r *Registry) CookieName() string { return r.cfg.SessionCookieName }

func (r *Registry) GoogleLogin(c *fiber.Ctx) error {
	rid, _ := c.Locals(middleware.ReqIDKey).(string)
	log := telemetry.L()
	log.Info().Str("req_id", rid).Msg("google_login_redirect")

	state := randomHex(16)
	c.Cookie(&fiber.Cookie{Name: "oauth_state", Value: state, HTTPOnly: true, SameSite: "Lax"})
	url := r.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
	return c.Redirect(url, http.StatusFound)
}

func (r *Registry) GoogleCallback(c *fiber.Ctx) error {
	rid, _ := c.Locals(middleware.ReqIDKey).(string)
	log := telemetry.L().With().Str("req_id", rid).Logger()

	state := c.Cookies("oauth_state")
	if state == "" || state != c.Query("state") {
		log.Warn().Msg("oauth_state_mismatch")
		return c.Status(400).JSON(fiber.Map{"error": "bad state"})
	}

	tok, err := r.oauth.Exchange(context.Background(), c.Query("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth_exchange_failed")
		return c.Status(400).JSON(fiber.Map{"error": "exchange failed"})
	}

	ui, err := fetchGoogleUserinfo(tok.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("oauth_userinfo_failed")
		return c.Status(502).JSON(fiber.Map{"error": "userinfo failed"})
	}

	if len(r.cfg.OAuthAllowedDomains) > 0 && !domainAllowed(ui.Email, r.cfg.OAuthAllowedDomains) {
		return c.Status(403).JSON(fiber.Map{"error": "domain not allowed"})
	}

	log.Info().Str("email", ui.Email).Str("sub", ui.Sub).Msg("login_userinfo")

	userID, err := upsertUser(r.db, ui)
	if err != nil {
		log.Error().Err(err).Msg("user_upsert_failed")
		return c.Status(500).JSON(fiber.Map{"error": "login failed"})
	}

	sessID := randomHex(16)
	saveSessionDB(r.db, sessID, userID, c.IP(), string(c.Request().Header.UserAgent()))
	r.rdb.Set(context.Background(), "sess:"+sessID, userID, r.cfg.SessionTTL)

	c.Cookie(&fiber.Cookie{
		Name:     r.cfg.SessionCookieName,
		Value:    sessID,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   int(r.cfg.SessionTTL.Seconds()),
	})

	redir := c.Query("redirect")
	if redir == "" {
		redir = r.cfg.ClientURL
	}
	return c.Redirect(redir, http.StatusFound)
}

func (r *Registry) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(r.cfg.SessionCookieName)
	if sid != "" {
		r.rdb.Del(c.Context(), "sess:"+sid)
		c.ClearCookie(r.cfg.SessionCookieName)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (r *Registry) Me(c *fiber.Ctx) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "unauthorized"})
	}
	var user struct {
		ID        int64     `db:"id" json:"id"`
		Email     string    `db:"email" json:"email"`
		Name      string    `db:"name" json:"name"`
		Picture   string    `db:"picture" json:"picture"`
		CreatedAt time.Time `db:"created_at" json:"created_at"`
	}
	if err := r.db.Get(&user, `SELECT id, email, name, picture, created_at FROM users WHERE id=? LIMIT 1`, uid); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "db error"})
	}
	return c.JSON(user)
}

func domainAllowed(email string, domains []string) bool {
	for _, d := range domains {
		if strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(d)) {
			return true
		}
	}
	return false
}

func randomHex(n int) string { b := make([]byte, n); rand.Read(b); return hex.EncodeToString(b) }

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func fetchGoogleUserinfo(accessToken string) (*googleUserInfo, error) {
	req, _ := http.NewRequest("GET", "https://www.googleapis.com/oauth2/v3/userinfo", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var ui googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&ui); err != nil {
		return nil, err
	}
	return &ui, nil
}

func upsertUser(db *sqlx.DB, ui *googleUserInfo) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO users (provider, provider_id, email, name, picture, last_login_at, created_at, updated_at)
		VALUES ('google', ?, ?, ?, ?, NOW(), NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			email = VALUES(email),
			name = VALUES(name),
			picture = VALUES(picture),
			last_login_at = NOW(),
			updated_at = NOW(),
			id = LAST_INSERT_ID(id)
	`, ui.Sub, ui.Email, ui.Name, ui.Picture)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		var fetched int64
		if e := db.Get(&fetched, `SELECT id FROM users WHERE provider='google' AND provider_id=? LIMIT 1`, ui.Sub); e != nil {
			return 0, e
		}
		return fetched, nil
	}
	return id, nil
}

func saveSessionDB(db *sqlx.DB, sid string, userID int64, ip, ua string) {
	if _, err := db.Exec(`INSERT INTO user_sessions(id, user_id, ip, user_agent) VALUES(?,?,?,?)`,
		sid, userID, ip, ua); err != nil {
		log := telemetry.L()
		log.Error().Err(err).Int64("user_id", userID).Msg("save_session_failed")
	}
}
