package middleware

import (
	"log"

	"agriloan-portal/internal/config"
	"agriloan-portal/internal/core/session"
	"agriloan-portal/internal/pkg/sessioncookie"

	"github.com/gofiber/fiber/v2"
)

const sessionLocal = "portalSession"

// SessionMiddleware resolves the signed session cookie into a live
// session, binds it to the request context for the upstream client, and
// resumes it (stored token → who-am-I) when it is still Unknown.
func SessionMiddleware(manager *session.Manager, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Validate the cookie; an invalid or missing cookie mints a
		// fresh anonymous session
		var sid string
		if value := c.Cookies(cfg.Cookie.Name); value != "" {
			if id, err := sessioncookie.Validate(value, cfg.Session.Secret); err == nil {
				sid = id
			}
		}

		// 2. Attach the session to the request context
		sess, ctx := manager.Attach(c.UserContext(), sid)
		c.SetUserContext(ctx)
		c.Locals(sessionLocal, sess)

		// 3. Set the cookie when the session is new to this browser
		if sid == "" {
			value, err := sessioncookie.Sign(sess.ID(), cfg.Session.Secret, cfg.Session.TTL)
			if err != nil {
				log.Printf("⚠️ Failed to sign session cookie: %v", err)
			} else {
				c.Cookie(&fiber.Cookie{
					Name:     cfg.Cookie.Name,
					Value:    value,
					Path:     "/",
					MaxAge:   int(cfg.Session.TTL.Seconds()),
					Secure:   cfg.Cookie.Secure,
					HTTPOnly: true,
					SameSite: cfg.Cookie.SameSite,
					Domain:   cfg.Cookie.Domain,
				})
			}
		}

		// 4. Resume: stored token → who-am-I, or straight to Anonymous.
		// A store failure leaves the session Anonymous; the request itself
		// still proceeds.
		if err := manager.Resume(ctx, sess); err != nil {
			log.Printf("⚠️ Session resume failed: %v", err)
		}

		return c.Next()
	}
}

// SessionFromCtx returns the session attached by SessionMiddleware.
func SessionFromCtx(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocal).(*session.Session)
	return sess
}
