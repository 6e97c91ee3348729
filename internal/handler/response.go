package handler

import (
	"errors"
	"net/http"

	"agrimarket/internal/domain/model"
	"agrimarket/internal/middleware"
	"agrimarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラー種別をHTTPステータスへ変換する。握り潰しはしない
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error()})
	}

	var pe *usecase.PermissionError
	if errors.As(err, &pe) {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: pe.Error()})
	}

	var ite *usecase.InvalidTransitionError
	if errors.As(err, &ite) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: ite.Error()})
	}

	var nfe *usecase.NotFoundError
	if errors.As(err, &nfe) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: nfe.Error()})
	}

	var pse *usecase.PersistenceError
	if errors.As(err, &pse) {
		//詳細は出さない。atomicなのでリトライして安全
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "temporary failure, try again"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// JWTミドルウェアが入れたactorを取り出す
func getActor(c echo.Context) (usecase.Actor, bool) {
	rawID := c.Get(middleware.CtxUserIDKey)
	userID, ok := rawID.(int64)
	if !ok || userID <= 0 {
		return usecase.Actor{}, false
	}

	rawRole := c.Get(middleware.CtxUserRoleKey)
	role, ok := rawRole.(string)
	if !ok || role == "" {
		return usecase.Actor{}, false
	}

	return usecase.Actor{UserID: userID, Role: model.Role(role)}, true
}
