package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/services"
)

var avatarLimit = map[string]any{"Max": "500KB"}

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	blobs       ports.BlobStore
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, blobs ports.BlobStore, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		blobs:       blobs,
		logger:      logger,
	}
}

// Register cadastra um novo usuário
// @Summary      Cadastra um usuário
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Dados do usuário"
// @Success      201  {object}  dto.UserResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), services.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.Password2,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user, h.blobs.URL))
}

// Login autentica e devolve o token de acesso
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		ID:    result.User.ID,
		Name:  result.User.Name,
	})
}

// GetUser busca um usuário por ID
// @Summary      Busca um usuário
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID do usuário"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user, h.blobs.URL))
}

// ListAuthors lista os autores
// @Summary      Lista autores
// @Tags         users
// @Produce      json
// @Param        page       query  int  false  "Página (começa em 1)"
// @Param        page_size  query  int  false  "Itens por página (máx. 500)"
// @Success      200  {array}  dto.UserResponse
// @Router       /users [get]
func (h *UserHandler) ListAuthors(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}

	users, err := h.userService.ListAuthors(c.Request.Context(), repositories.UserFilters{
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users, h.blobs.URL))
}

// ChangeAvatar troca a imagem de perfil do usuário autenticado
// @Summary      Troca o avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Imagem (até 500KB)"
// @Success      200  {object}  dto.UserResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /users/change-avatar [post]
func (h *UserHandler) ChangeAvatar(c *gin.Context) {
	avatar, file, err := formFile(c, "avatar")
	if err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}
	defer closeFile(file)

	user, err := h.userService.ChangeAvatar(c.Request.Context(), identity(c), avatar)
	if err != nil {
		fail(c, h.logger, err, avatarLimit)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user, h.blobs.URL))
}

// EditUser atualiza o perfil do usuário autenticado
// @Summary      Edita o perfil
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.EditUserRequest  true  "Novos dados"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /users/edit-user [put]
func (h *UserHandler) EditUser(c *gin.Context) {
	var req dto.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}

	user, err := h.userService.EditUser(c.Request.Context(), identity(c), services.EditUserInput{
		Name:               req.Name,
		Email:              req.Email,
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewConfirmNewPassword,
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user, h.blobs.URL))
}
