package services_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/valueobjects"
	"github.com/rafabene/blog-backend/internal/services"
)

var _ = Describe("PostService", func() {
	var (
		ctx       context.Context
		users     *memUserRepo
		posts     *memPostRepo
		blobs     *memBlobStore
		uow       *inlineUnitOfWork
		events    *recordingPublisher
		service   *services.PostService
		author    ports.Identity
		stranger  ports.Identity
		validPost services.CreatePostInput
	)

	seedUser := func(name, email string) ports.Identity {
		e, err := valueobjects.NewEmail(email)
		Expect(err).NotTo(HaveOccurred())
		u := &entities.User{Name: name, Email: e, PasswordHash: "hashed:secret"}
		Expect(users.Create(ctx, u)).To(Succeed())
		return ports.Identity{ID: u.ID, Name: u.Name}
	}

	postCountOf := func(id ports.Identity) int {
		u, err := users.FindByID(ctx, id.ID)
		Expect(err).NotTo(HaveOccurred())
		return u.PostCount
	}

	BeforeEach(func() {
		ctx = context.Background()
		users = newMemUserRepo()
		posts = newMemPostRepo()
		blobs = newMemBlobStore()
		uow = &inlineUnitOfWork{}
		events = &recordingPublisher{}
		service = services.NewPostService(posts, users, blobs, uow, events, nopLogger{})

		author = seedUser("Ada", "ada@example.com")
		stranger = seedUser("Bob", "bob@example.com")

		validPost = services.CreatePostInput{
			Title:       "T",
			Category:    "Art",
			Description: "D",
			Thumbnail:   image("sunset.png", 1000),
		}
	})

	Describe("CreatePost", func() {
		It("cria o post, grava a thumbnail e incrementa o contador do autor", func() {
			post, err := service.CreatePost(ctx, author, validPost)

			Expect(err).NotTo(HaveOccurred())
			Expect(post.ID).NotTo(BeEmpty())
			Expect(post.Category).To(Equal(entities.CategoryArt))
			Expect(post.Likes).To(BeEmpty())
			Expect(post.Creator).To(Equal(author.ID))
			Expect(post.Thumbnail.String()).To(HavePrefix("thumbnails/sunset-"))
			Expect(post.Thumbnail.String()).To(HaveSuffix(".png"))
			Expect(blobs.has(post.Thumbnail.Key())).To(BeTrue())
			Expect(postCountOf(author)).To(Equal(1))
			Expect(uow.calls).To(Equal(1))
			Expect(events.types()).To(Equal([]string{ports.EventPostCreated}))
		})

		DescribeTable("rejeita campos ausentes",
			func(mutate func(*services.CreatePostInput), expected error) {
				input := validPost
				mutate(&input)

				_, err := service.CreatePost(ctx, author, input)

				Expect(err).To(MatchError(expected))
				Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidationFailed))
				Expect(blobs.size()).To(BeZero())
				Expect(postCountOf(author)).To(BeZero())
			},
			Entry("sem título", func(i *services.CreatePostInput) { i.Title = "  " }, domainerrors.ErrMissingFields),
			Entry("sem categoria", func(i *services.CreatePostInput) { i.Category = "" }, domainerrors.ErrMissingFields),
			Entry("sem descrição", func(i *services.CreatePostInput) { i.Description = "" }, domainerrors.ErrMissingFields),
			Entry("sem imagem", func(i *services.CreatePostInput) { i.Thumbnail = nil }, domainerrors.ErrMissingImage),
			Entry("categoria desconhecida", func(i *services.CreatePostInput) { i.Category = "Sports" }, domainerrors.ErrInvalidCategory),
			Entry("imagem maior que 2MB", func(i *services.CreatePostInput) { i.Thumbnail = image("big.png", 2_000_001) }, domainerrors.ErrImageTooLarge),
		)

		It("aceita imagem com exatamente 2.000.000 bytes", func() {
			input := validPost
			input.Thumbnail = image("limit.jpg", 2_000_000)

			_, err := service.CreatePost(ctx, author, input)

			Expect(err).NotTo(HaveOccurred())
		})

		It("falha com UploadFailed quando o blob store devolve erro", func() {
			blobs.uploadErr = errors.New("network down")

			_, err := service.CreatePost(ctx, author, validPost)

			Expect(err).To(MatchError(domainerrors.ErrUploadFailed))
			Expect(posts.count()).To(BeZero())
			Expect(postCountOf(author)).To(BeZero())
		})

		It("falha com UploadFailed quando o blob store não devolve identificador", func() {
			blobs.noID = true

			_, err := service.CreatePost(ctx, author, validPost)

			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindUploadFailed))
			Expect(posts.count()).To(BeZero())
		})

		It("remove a thumbnail enviada quando a gravação do post falha", func() {
			posts.createErr = errors.New("insert rejected")

			_, err := service.CreatePost(ctx, author, validPost)

			Expect(err).To(MatchError(domainerrors.ErrPersistFailed))
			Expect(blobs.size()).To(BeZero())
			Expect(blobs.deleted).To(HaveLen(1))
			Expect(postCountOf(author)).To(BeZero())
			Expect(events.types()).To(BeEmpty())
		})

		It("recusa post sem autor e remove a thumbnail enviada", func() {
			_, err := service.CreatePost(ctx, ports.Identity{}, validPost)

			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
			Expect(blobs.size()).To(BeZero())
			Expect(blobs.deleted).To(HaveLen(1))
			Expect(posts.count()).To(BeZero())
			Expect(uow.calls).To(BeZero())
		})

		It("não falha quando a publicação do evento falha", func() {
			events.err = errors.New("bus offline")

			_, err := service.CreatePost(ctx, author, validPost)

			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("leitura", func() {
		It("retorna NotFound para post inexistente", func() {
			_, err := service.GetPost(ctx, "missing")

			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})

		It("lista do mais novo para o mais antigo", func() {
			first, err := service.CreatePost(ctx, author, validPost)
			Expect(err).NotTo(HaveOccurred())
			input := validPost
			input.Thumbnail = image("second.png", 10)
			second, err := service.CreatePost(ctx, stranger, input)
			Expect(err).NotTo(HaveOccurred())

			all, err := service.ListPosts(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
			Expect(all[0].ID).To(Equal(second.ID))
			Expect(all[1].ID).To(Equal(first.ID))
		})

		It("filtra por categoria exata e devolve vazio para categoria desconhecida", func() {
			_, err := service.CreatePost(ctx, author, validPost)
			Expect(err).NotTo(HaveOccurred())
			weather := validPost
			weather.Category = "Weather"
			weather.Thumbnail = image("rain.png", 10)
			_, err = service.CreatePost(ctx, author, weather)
			Expect(err).NotTo(HaveOccurred())

			art, err := service.ListPostsByCategory(ctx, "Art")
			Expect(err).NotTo(HaveOccurred())
			Expect(art).To(HaveLen(1))
			Expect(art[0].Category).To(Equal(entities.CategoryArt))

			lower, err := service.ListPostsByCategory(ctx, "art")
			Expect(err).NotTo(HaveOccurred())
			Expect(lower).To(BeEmpty())

			unknown, err := service.ListPostsByCategory(ctx, "Sports")
			Expect(err).NotTo(HaveOccurred())
			Expect(unknown).NotTo(BeNil())
			Expect(unknown).To(BeEmpty())
		})

		It("filtra por autor", func() {
			_, err := service.CreatePost(ctx, author, validPost)
			Expect(err).NotTo(HaveOccurred())

			mine, err := service.ListPostsByCreator(ctx, author.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))

			theirs, err := service.ListPostsByCreator(ctx, stranger.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(theirs).To(BeEmpty())
		})
	})

	Describe("EditPost", func() {
		var (
			existing *entities.Post
			edit     services.EditPostInput
		)

		BeforeEach(func() {
			var err error
			existing, err = service.CreatePost(ctx, author, validPost)
			Expect(err).NotTo(HaveOccurred())

			edit = services.EditPostInput{
				Title:       "New title",
				Category:    "Education",
				Description: "A longer description",
			}
		})

		It("sem nova imagem mantém a thumbnail", func() {
			updated, err := service.EditPost(ctx, author, existing.ID, edit)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Title).To(Equal("New title"))
			Expect(updated.Category).To(Equal(entities.CategoryEducation))
			Expect(updated.Thumbnail).To(Equal(existing.Thumbnail))

			stored, err := service.GetPost(ctx, existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Thumbnail).To(Equal(existing.Thumbnail))
			Expect(stored.Description).To(Equal("A longer description"))
		})

		It("com nova imagem troca a thumbnail e mantém a antiga no blob store", func() {
			edit.Thumbnail = image("new.jpg", 500)

			updated, err := service.EditPost(ctx, author, existing.ID, edit)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Thumbnail).NotTo(Equal(existing.Thumbnail))
			Expect(updated.Thumbnail.String()).To(HaveSuffix(".jpg"))
			Expect(blobs.has(updated.Thumbnail.Key())).To(BeTrue())
			Expect(blobs.has(existing.Thumbnail.Key())).To(BeTrue())
			Expect(blobs.deleted).To(BeEmpty())
		})

		It("rejeita outro usuário com Forbidden", func() {
			_, err := service.EditPost(ctx, stranger, existing.ID, edit)

			Expect(err).To(MatchError(domainerrors.ErrNotPostOwner))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindForbidden))

			stored, _ := service.GetPost(ctx, existing.ID)
			Expect(stored.Title).To(Equal("T"))
		})

		It("exige descrição com pelo menos 12 caracteres", func() {
			edit.Description = "too short"

			_, err := service.EditPost(ctx, author, existing.ID, edit)

			Expect(err).To(MatchError(domainerrors.ErrDescriptionTooShort))
		})

		It("retorna NotFound para post inexistente", func() {
			_, err := service.EditPost(ctx, author, "missing", edit)

			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})

		It("rejeita nova imagem maior que 2MB sem enviar", func() {
			edit.Thumbnail = image("huge.png", 2_500_000)

			_, err := service.EditPost(ctx, author, existing.ID, edit)

			Expect(err).To(MatchError(domainerrors.ErrImageTooLarge))
			Expect(blobs.size()).To(Equal(1))
		})

		It("falha com UploadFailed quando o envio da nova imagem falha", func() {
			edit.Thumbnail = image("new.png", 10)
			blobs.uploadErr = errors.New("quota exceeded")

			_, err := service.EditPost(ctx, author, existing.ID, edit)

			Expect(err).To(MatchError(domainerrors.ErrUploadFailed))
			stored, _ := service.GetPost(ctx, existing.ID)
			Expect(stored.Thumbnail).To(Equal(existing.Thumbnail))
		})

		It("falha com PersistFailed e remove a nova imagem quando a atualização falha", func() {
			edit.Thumbnail = image("new.png", 10)
			posts.updateErr = errors.New("write conflict")

			_, err := service.EditPost(ctx, author, existing.ID, edit)

			Expect(err).To(MatchError(domainerrors.ErrPersistFailed))
			Expect(blobs.deleted).To(HaveLen(1))
			Expect(blobs.has(existing.Thumbnail.Key())).To(BeTrue())
		})
	})

	Describe("LikePost", func() {
		var existing *entities.Post

		BeforeEach(func() {
			var err error
			existing, err = service.CreatePost(ctx, author, validPost)
			Expect(err).NotTo(HaveOccurred())
		})

		It("alterna a curtida e volta à contagem original", func() {
			count, err := service.LikePost(ctx, stranger, existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))

			count, err = service.LikePost(ctx, stranger, existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("conta cada usuário uma única vez", func() {
			_, err := service.LikePost(ctx, stranger, existing.ID)
			Expect(err).NotTo(HaveOccurred())
			count, err := service.LikePost(ctx, author, existing.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(count).To(Equal(2))
			stored, _ := service.GetPost(ctx, existing.ID)
			Expect(stored.Likes).To(ConsistOf(author.ID, stranger.ID))
		})

		It("retorna NotFound para post inexistente", func() {
			_, err := service.LikePost(ctx, stranger, "missing")

			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})
	})

	Describe("DeletePost", func() {
		var existing *entities.Post

		BeforeEach(func() {
			var err error
			existing, err = service.CreatePost(ctx, author, validPost)
			Expect(err).NotTo(HaveOccurred())
			Expect(postCountOf(author)).To(Equal(1))
		})

		It("remove o documento e a thumbnail e decrementa o contador", func() {
			Expect(service.DeletePost(ctx, author, existing.ID)).To(Succeed())

			_, err := service.GetPost(ctx, existing.ID)
			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
			Expect(blobs.has(existing.Thumbnail.Key())).To(BeFalse())
			Expect(blobs.deleted).To(Equal([]string{existing.Thumbnail.Key()}))
			Expect(postCountOf(author)).To(BeZero())
			Expect(events.types()).To(ContainElement(ports.EventPostDeleted))
		})

		It("rejeita outro usuário com Forbidden e não toca no blob", func() {
			err := service.DeletePost(ctx, stranger, existing.ID)

			Expect(err).To(MatchError(domainerrors.ErrNotPostOwner))
			Expect(blobs.has(existing.Thumbnail.Key())).To(BeTrue())
			Expect(posts.count()).To(Equal(1))
			Expect(postCountOf(author)).To(Equal(1))
		})

		It("mantém o documento quando a remoção da thumbnail falha", func() {
			blobs.deleteErr = errors.New("blob store unavailable")

			err := service.DeletePost(ctx, author, existing.ID)

			Expect(err).To(MatchError(domainerrors.ErrBlobDeleteFailed))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindUploadFailed))
			Expect(posts.count()).To(Equal(1))
			Expect(postCountOf(author)).To(Equal(1))
		})

		It("reporta PersistFailed quando o documento não pode ser removido após o blob", func() {
			posts.deleteErr = errors.New("delete rejected")

			err := service.DeletePost(ctx, author, existing.ID)

			Expect(err).To(MatchError(domainerrors.ErrPersistFailed))
			Expect(blobs.has(existing.Thumbnail.Key())).To(BeFalse())
			Expect(posts.count()).To(Equal(1))
		})

		It("retorna NotFound para post inexistente", func() {
			err := service.DeletePost(ctx, author, "missing")

			Expect(err).To(MatchError(domainerrors.ErrPostNotFound))
		})
	})
})
