package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/services"
)

var thumbnailLimit = map[string]any{"Max": "2MB"}

// PostHandler lida com requisições HTTP relacionadas a posts
type PostHandler struct {
	postService *services.PostService
	blobs       ports.BlobStore
	logger      ports.Logger
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, blobs ports.BlobStore, logger ports.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		blobs:       blobs,
		logger:      logger,
	}
}

// CreatePost cria um post
// @Summary      Cria um post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true  "Título"
// @Param        category     formData  string  true  "Categoria"
// @Param        description  formData  string  true  "Descrição"
// @Param        thumbnail    formData  file    true  "Imagem (até 2MB)"
// @Success      201  {object}  dto.PostResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}

	thumbnail, file, err := formFile(c, "thumbnail")
	if err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}
	defer closeFile(file)

	post, err := h.postService.CreatePost(c.Request.Context(), identity(c), services.CreatePostInput{
		Title:       form.Title,
		Category:    form.Category,
		Description: form.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		fail(c, h.logger, err, thumbnailLimit)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostResponse(post, h.blobs.URL))
}

// GetPosts lista todos os posts
// @Summary      Lista posts (mais novos primeiro)
// @Tags         posts
// @Produce      json
// @Success      200  {array}  dto.PostResponse
// @Router       /posts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts, h.blobs.URL))
}

// GetPost busca um post por ID
// @Summary      Busca um post
// @Tags         posts
// @Produce      json
// @Param        id   path  string  true  "ID do post"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post, h.blobs.URL))
}

// GetCategoryPosts lista posts de uma categoria
// @Summary      Lista posts por categoria
// @Tags         posts
// @Produce      json
// @Param        category  path  string  true  "Categoria (exata)"
// @Success      200  {array}  dto.PostResponse
// @Router       /posts/categories/{category} [get]
func (h *PostHandler) GetCategoryPosts(c *gin.Context) {
	posts, err := h.postService.ListPostsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts, h.blobs.URL))
}

// GetUserPosts lista posts de um autor
// @Summary      Lista posts de um autor
// @Tags         posts
// @Produce      json
// @Param        id   path  string  true  "ID do autor"
// @Success      200  {array}  dto.PostResponse
// @Router       /posts/users/{id} [get]
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.postService.ListPostsByCreator(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponses(posts, h.blobs.URL))
}

// EditPost atualiza um post do próprio autor
// @Summary      Edita um post
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "ID do post"
// @Param        title        formData  string  true   "Título"
// @Param        category     formData  string  true   "Categoria"
// @Param        description  formData  string  true   "Descrição (mínimo 12 caracteres)"
// @Param        thumbnail    formData  file    false  "Nova imagem (até 2MB)"
// @Success      200  {object}  dto.PostResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) EditPost(c *gin.Context) {
	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}

	thumbnail, file, err := formFile(c, "thumbnail")
	if err != nil {
		dto.Abort(c, dto.BindingErrorResponse(c, err))
		return
	}
	defer closeFile(file)

	post, err := h.postService.EditPost(c.Request.Context(), identity(c), c.Param("id"), services.EditPostInput{
		Title:       form.Title,
		Category:    form.Category,
		Description: form.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		fail(c, h.logger, err, thumbnailLimit)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post, h.blobs.URL))
}

// LikePost alterna a curtida do usuário autenticado
// @Summary      Curte ou descurte um post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do post"
// @Success      200  {object}  dto.LikeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	id := c.Param("id")

	count, err := h.postService.LikePost(c.Request.Context(), identity(c), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.LikeResponse{PostID: id, Likes: count})
}

// DeletePost remove um post do próprio autor
// @Summary      Remove um post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do post"
// @Success      202  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.MessageResponse{Message: dto.T(c, "post.deleted")})
}

// ListCategories lista as categorias aceitas
// @Summary      Lista categorias
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Router       /categories [get]
func (h *PostHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewCategoriesResponse())
}
