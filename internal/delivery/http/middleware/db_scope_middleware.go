package middleware

import (
	"net/http"

	"clinic-intake/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
)

// DBScopeMiddleware gives every request its own connection scope and
// releases whatever it acquired once the handler returns, panics included.
type DBScopeMiddleware struct {
	accessor *database.Accessor
	log      *logrus.Logger
}

func NewDBScopeMiddleware(accessor *database.Accessor, log *logrus.Logger) *DBScopeMiddleware {
	return &DBScopeMiddleware{
		accessor: accessor,
		log:      log,
	}
}

func (m *DBScopeMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := m.accessor.NewScope()
		defer func() {
			if err := scope.Close(); err != nil {
				m.log.Warnf("Failed to release database connection: %v", err)
			}
		}()

		next.ServeHTTP(w, r.WithContext(database.WithScope(r.Context(), scope)))
	})
}
