package services_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	"github.com/rafabene/blog-backend/internal/services"
)

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		users   *memUserRepo
		blobs   *memBlobStore
		service *services.UserService
	)

	register := func(name, email, password string) *entities.User {
		user, err := service.Register(ctx, services.RegisterInput{
			Name:            name,
			Email:           email,
			Password:        password,
			PasswordConfirm: password,
		})
		Expect(err).NotTo(HaveOccurred())
		return user
	}

	BeforeEach(func() {
		ctx = context.Background()
		users = newMemUserRepo()
		blobs = newMemBlobStore()
		service = services.NewUserService(users, blobs, plainHasher{}, staticTokens{}, nopLogger{})
	})

	Describe("Register", func() {
		It("cria o usuário com email normalizado e senha com hash", func() {
			user := register("Ada", "  Ada@Example.COM ", "secret1")

			Expect(user.ID).NotTo(BeEmpty())
			Expect(user.Email.String()).To(Equal("ada@example.com"))
			Expect(user.PasswordHash).To(Equal("hashed:secret1"))
			Expect(user.PostCount).To(BeZero())
			Expect(user.HasAvatar()).To(BeFalse())
		})

		It("rejeita email já cadastrado", func() {
			register("Ada", "ada@example.com", "secret1")

			_, err := service.Register(ctx, services.RegisterInput{
				Name: "Other", Email: "ADA@example.com", Password: "secret1", PasswordConfirm: "secret1",
			})

			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindConflict))
		})

		It("não grava usuário que viola as invariantes da entidade", func() {
			service = services.NewUserService(users, blobs, blankHasher{}, staticTokens{}, nopLogger{})

			_, err := service.Register(ctx, services.RegisterInput{
				Name: "Ada", Email: "ada@example.com", Password: "secret1", PasswordConfirm: "secret1",
			})

			Expect(err).To(MatchError(domainerrors.ErrMissingFields))
			authors, _ := service.ListAuthors(ctx, repositories.UserFilters{})
			Expect(authors).To(BeEmpty())
		})

		DescribeTable("valida os dados de entrada",
			func(input services.RegisterInput, expected error) {
				_, err := service.Register(ctx, input)
				Expect(err).To(MatchError(expected))
			},
			Entry("campos ausentes", services.RegisterInput{Name: "Ada", Email: "ada@example.com"}, domainerrors.ErrMissingFields),
			Entry("email inválido", services.RegisterInput{Name: "Ada", Email: "not-an-email", Password: "secret1", PasswordConfirm: "secret1"}, domainerrors.ErrInvalidEmail),
			Entry("senha curta", services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "abc", PasswordConfirm: "abc"}, domainerrors.ErrPasswordTooShort),
			Entry("confirmação diferente", services.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1", PasswordConfirm: "secret2"}, domainerrors.ErrPasswordMismatch),
		)
	})

	Describe("Login", func() {
		BeforeEach(func() {
			register("Ada", "ada@example.com", "secret1")
		})

		It("emite token para credenciais válidas", func() {
			result, err := service.Login(ctx, "ADA@example.com", "secret1")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).To(Equal("token-" + result.User.ID))
		})

		It("rejeita senha errada", func() {
			_, err := service.Login(ctx, "ada@example.com", "wrong-password")

			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("rejeita email desconhecido com o mesmo erro", func() {
			_, err := service.Login(ctx, "nobody@example.com", "secret1")

			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})
	})

	Describe("consultas", func() {
		It("retorna NotFound para usuário inexistente", func() {
			_, err := service.GetUser(ctx, "missing")

			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})

		It("lista os autores", func() {
			register("Ada", "ada@example.com", "secret1")
			register("Bob", "bob@example.com", "secret1")

			authors, err := service.ListAuthors(ctx, repositories.UserFilters{})

			Expect(err).NotTo(HaveOccurred())
			Expect(authors).To(HaveLen(2))
		})
	})

	Describe("ChangeAvatar", func() {
		var caller ports.Identity

		BeforeEach(func() {
			user := register("Ada", "ada@example.com", "secret1")
			caller = ports.Identity{ID: user.ID, Name: user.Name}
		})

		It("grava o primeiro avatar sem remover nada", func() {
			user, err := service.ChangeAvatar(ctx, caller, image("me.png", 1000))

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Avatar.String()).To(HavePrefix("avatars/me-"))
			Expect(blobs.deleted).To(BeEmpty())

			stored, _ := service.GetUser(ctx, caller.ID)
			Expect(stored.Avatar).To(Equal(user.Avatar))
		})

		It("remove o avatar anterior ao trocar", func() {
			first, err := service.ChangeAvatar(ctx, caller, image("me.png", 1000))
			Expect(err).NotTo(HaveOccurred())
			previous := first.Avatar

			second, err := service.ChangeAvatar(ctx, caller, image("me2.jpg", 1000))

			Expect(err).NotTo(HaveOccurred())
			Expect(second.Avatar).NotTo(Equal(previous))
			Expect(blobs.deleted).To(Equal([]string{previous.Key()}))
			Expect(blobs.has(second.Avatar.Key())).To(BeTrue())
		})

		It("continua quando a remoção do avatar anterior falha", func() {
			_, err := service.ChangeAvatar(ctx, caller, image("me.png", 1000))
			Expect(err).NotTo(HaveOccurred())
			blobs.deleteErr = errors.New("blob store unavailable")

			user, err := service.ChangeAvatar(ctx, caller, image("me2.png", 1000))

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Avatar.String()).To(HavePrefix("avatars/me2-"))
		})

		It("rejeita avatar acima de 500KB antes de remover o atual", func() {
			first, err := service.ChangeAvatar(ctx, caller, image("me.png", 1000))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ChangeAvatar(ctx, caller, image("big.png", 500_001))

			Expect(err).To(MatchError(domainerrors.ErrImageTooLarge))
			Expect(blobs.has(first.Avatar.Key())).To(BeTrue())
			Expect(blobs.deleted).To(BeEmpty())
		})

		It("exige imagem", func() {
			_, err := service.ChangeAvatar(ctx, caller, nil)

			Expect(err).To(MatchError(domainerrors.ErrMissingImage))
		})

		It("falha com UploadFailed quando o envio falha", func() {
			blobs.uploadErr = errors.New("timeout")

			_, err := service.ChangeAvatar(ctx, caller, image("me.png", 1000))

			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindUploadFailed))
		})
	})

	Describe("EditUser", func() {
		var (
			caller ports.Identity
			input  services.EditUserInput
		)

		BeforeEach(func() {
			user := register("Ada", "ada@example.com", "secret1")
			caller = ports.Identity{ID: user.ID, Name: user.Name}
			input = services.EditUserInput{
				Name:               "Ada Lovelace",
				Email:              "lovelace@example.com",
				CurrentPassword:    "secret1",
				NewPassword:        "newsecret",
				NewPasswordConfirm: "newsecret",
			}
		})

		It("atualiza nome, email e senha", func() {
			user, err := service.EditUser(ctx, caller, input)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Ada Lovelace"))
			Expect(user.Email.String()).To(Equal("lovelace@example.com"))

			_, err = service.Login(ctx, "lovelace@example.com", "newsecret")
			Expect(err).NotTo(HaveOccurred())
		})

		It("permite manter o próprio email", func() {
			input.Email = "ada@example.com"

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).NotTo(HaveOccurred())
		})

		It("rejeita email de outro usuário", func() {
			register("Bob", "bob@example.com", "secret1")
			input.Email = "bob@example.com"

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("rejeita senha atual incorreta", func() {
			input.CurrentPassword = "wrong1"

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).To(MatchError(domainerrors.ErrInvalidCurrentPassword))
		})

		It("rejeita confirmação diferente", func() {
			input.NewPasswordConfirm = "different"

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).To(MatchError(domainerrors.ErrPasswordMismatch))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindPasswordMismatch))
		})

		It("rejeita nova senha curta", func() {
			input.NewPassword = "abc"
			input.NewPasswordConfirm = "abc"

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).To(MatchError(domainerrors.ErrPasswordTooShort))
		})

		It("exige todos os campos", func() {
			input.CurrentPassword = ""

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).To(MatchError(domainerrors.ErrMissingFields))
		})

		It("não grava perfil que viola as invariantes da entidade", func() {
			service = services.NewUserService(users, blobs, blankHasher{}, staticTokens{}, nopLogger{})

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).To(MatchError(domainerrors.ErrMissingFields))
			stored, _ := service.GetUser(ctx, caller.ID)
			Expect(stored.Email.String()).To(Equal("ada@example.com"))
		})

		It("reporta PersistFailed quando a gravação falha", func() {
			users.updateErr = errors.New("disk full")

			_, err := service.EditUser(ctx, caller, input)

			Expect(err).To(MatchError(domainerrors.ErrPersistFailed))
		})
	})
})
