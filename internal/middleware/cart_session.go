package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartSessionHeader = "X-Cart-Session"
	CartKeyKey        = "cart_key"
)

// CartSession resolves which cart the request works on. Signed-in users get
// user:<id>. Guests are identified by the X-Cart-Session header; a new session
// id is minted and echoed back when the header is missing or not a UUID.
// It must run after OptionalAuthenticate.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := GetUserID(c); ok {
			c.Set(CartKeyKey, UserCartKey(userID))
			c.Next()
			return
		}

		session := c.GetHeader(CartSessionHeader)
		if session == "" {
			session = c.Query("session")
		}
		id, err := uuid.Parse(session)
		if err != nil {
			id = uuid.New()
			GetLoggerFromContext(c).Debug("Minted guest cart session", map[string]interface{}{
				"session": id.String(),
			})
		}

		c.Header(CartSessionHeader, id.String())
		c.Set(CartKeyKey, GuestCartKey(id))
		c.Next()
	}
}

func UserCartKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func GuestCartKey(session uuid.UUID) string {
	return "guest:" + session.String()
}

// GetCartKey returns the cart key set by CartSession.
func GetCartKey(c *gin.Context) (string, bool) {
	key := c.GetString(CartKeyKey)
	return key, key != ""
}
