package sessions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketCalc/internal/api/http/middlewares"
	"pocketCalc/internal/domain"
	"pocketCalc/internal/ports"
)

// Controller — маршруты сессий клавиатуры: создать, прочитать, нажать клавиши, удалить.
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт контроллер сессий.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/sessions")

	api.POST("", c.create)
	api.GET("/:id", c.get)
	api.POST("/:id/keys", c.press)
	api.DELETE("/:id", c.remove)
}

// @Summary Создать сессию калькулятора
// @Tags sessions
// @Produce json
// @Success 201 {object} DisplayResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/sessions [post]
func (c *Controller) create(ctx *gin.Context) {
	s, err := c.uc.CreateSession(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "create session", err)
		return
	}
	ctx.JSON(http.StatusCreated, toDisplay(s))
}

// @Summary Состояние сессии
// @Tags sessions
// @Produce json
// @Param id path string true "id сессии"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (c *Controller) get(ctx *gin.Context) {
	s, err := c.uc.Session(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.fail(ctx, "get session", err)
		return
	}
	ctx.JSON(http.StatusOK, toSession(s))
}

// @Summary Нажать клавиши
// @Description Клавиши применяются по порядку: цифры, ".", "+", "-", "*", "/", "=", "AC", "+/-", "%".
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "id сессии"
// @Param request body PressRequest true "Клавиши"
// @Success 200 {object} DisplayResponse
// @Failure 400 {object} ErrorResponse "Невалидный запрос или неизвестная клавиша"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Сессию одновременно изменили"
// @Router /api/v1/sessions/{id}/keys [post]
func (c *Controller) press(ctx *gin.Context) {
	var req PressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("press bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	keys, err := domain.ParseKeys(req.Keys)
	if err != nil {
		c.fail(ctx, "press", err)
		return
	}

	s, err := c.uc.Press(ctx.Request.Context(), ctx.Param("id"), keys...)
	if err != nil {
		c.fail(ctx, "press", err)
		return
	}
	ctx.Set(middlewares.KeysPressedKey, len(keys))
	ctx.JSON(http.StatusOK, toDisplay(s))
}

// @Summary Удалить сессию
// @Tags sessions
// @Param id path string true "id сессии"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (c *Controller) remove(ctx *gin.Context) {
	if err := c.uc.DeleteSession(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.fail(ctx, "delete session", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// fail переводит ошибку use case в HTTP-статус.
func (c *Controller) fail(ctx *gin.Context, op string, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		c.log.Error(op+" failed", "error", err)
	} else {
		c.log.Warn(op+" rejected", "error", err)
	}
	ctx.JSON(code, ErrorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownKey), errors.Is(err, domain.ErrUnknownOperation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
