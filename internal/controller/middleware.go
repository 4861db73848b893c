package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/model"
	"github.com/Yasheenyash33/StacklyHub-main-main/internal/service"
)

// errUnauthorized — токен отсутствует, просрочен или не разобран.
// Не путать с service.ErrForbidden: там токен валиден, но роль не та.
var errUnauthorized = errors.New("unauthorized")

// authenticate извлекает и проверяет bearer-токен, загружает актора
func (c *Controller) authenticate(r *http.Request) (*model.User, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, errUnauthorized
	}

	username, err := c.tokens.Verify(strings.TrimPrefix(header, prefix))
	if err != nil {
		return nil, errUnauthorized
	}

	user, err := c.users.GetByUsername(r.Context(), username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUnauthorized
	}

	return user, nil
}

// requireRole проверяет, что роль актора входит в разрешённый набор.
// Наборы объявлены рядом с каждым обработчиком.
func requireRole(actor *model.User, allowed ...model.UserRole) error {
	for _, role := range allowed {
		if actor.Role == role {
			return nil
		}
	}

	return service.ErrForbidden
}

// pathID читает числовой сегмент пути
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, errors.New("invalid path parameter " + name)
	}

	return id, nil
}

// pagination читает skip/limit из query-параметров
func pagination(r *http.Request) (skip, limit int) {
	skip, limit = 0, 100
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	return skip, limit
}
