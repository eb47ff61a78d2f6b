package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"schoolsite-backend-go/internal/config"
	"schoolsite-backend-go/internal/services"
	"schoolsite-backend-go/internal/storage"
)

type Server struct {
	DB        *sqlx.DB
	Config    config.Config
	Tokens    services.TokenService
	Accounts  *services.Accounts
	Roles     *services.Roles
	Subjects  *services.Subjects
	Teachers  *services.Teachers
	Students  *services.Students
	Posts     *services.Posts
	Galleries *services.Galleries
	Profiles  *services.Profiles
	Media     *services.Media
	StartedAt time.Time
}

func NewServer(db *sqlx.DB, cfg config.Config, store storage.ObjectStorage) *Server {
	return &Server{
		DB:     db,
		Config: cfg,
		Tokens: services.TokenService{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
			TTL:    cfg.TokenTTL,
		},
		Accounts:  services.NewAccounts(db),
		Roles:     services.NewRoles(db),
		Subjects:  services.NewSubjects(db),
		Teachers:  services.NewTeachers(db),
		Students:  services.NewStudents(db),
		Posts:     services.NewPosts(db),
		Galleries: services.NewGalleries(db),
		Profiles:  services.NewProfiles(db),
		Media:     services.NewMedia(store, cfg.Upload.MaxBytes),
		StartedAt: time.Now().UTC(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// Forwarded headers are client-controlled unless a proxy in front sets them.
	if s.Config.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger)
	r.Use(Recover)
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "SAMEORIGIN"))
	r.Use(middleware.SetHeader("Referrer-Policy", "no-referrer"))
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	authenticate := Authenticate(s.Tokens, s.Accounts)
	optionalAuth := OptionalAuth(s.Tokens, s.Accounts)
	adminOnly := Authorize(services.AdminRoles...)
	limiter := NewRateLimiter(s.Config.RateLimitWindow, s.Config.RateLimitMax)

	r.Get("/", s.Welcome)
	r.Get("/uploads/*", s.ServeUpload)

	r.Route("/api", func(api chi.Router) {
		api.Use(limiter.Middleware)
		api.Get("/health", s.Health)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", s.Login)
			auth.Post("/logout", s.Logout)
			auth.With(authenticate).Get("/me", s.Me)
			auth.With(authenticate).Put("/password", s.ChangePassword)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authenticate, adminOnly)
			users.Get("/deleted", s.ListDeletedUsers)
			users.Post("/{id}/restore", s.RestoreUser)
			users.Post("/{id}/reset-password", s.ResetUserPassword)
			users.Get("/", s.ListUsers)
			users.Post("/", s.CreateUser)
			users.Get("/{id}", s.GetUser)
			users.Put("/{id}", s.UpdateUser)
			users.Delete("/{id}", s.DeleteUser)
		})

		api.Route("/roles", func(roles chi.Router) {
			roles.Use(authenticate, adminOnly)
			roles.Get("/", s.ListRoles)
			roles.Post("/", s.CreateRole)
			roles.Get("/{id}", s.GetRole)
			roles.Put("/{id}", s.UpdateRole)
			roles.Delete("/{id}", s.DeleteRole)
		})

		api.Route("/profile", func(profile chi.Router) {
			profile.Get("/", s.GetProfile)
			profile.With(authenticate, adminOnly).Post("/", s.SaveProfile)
		})

		api.Route("/subjects", func(subjects chi.Router) {
			subjects.Get("/", s.ListSubjects)
			subjects.Get("/{id}", s.GetSubject)
			subjects.Group(func(admin chi.Router) {
				admin.Use(authenticate, adminOnly)
				admin.Post("/", s.CreateSubject)
				admin.Put("/{id}", s.UpdateSubject)
				admin.Delete("/{id}", s.DeleteSubject)
			})
		})

		api.Route("/teachers", func(teachers chi.Router) {
			teachers.With(authenticate, adminOnly).Get("/deleted", s.ListDeletedTeachers)
			teachers.Get("/", s.ListTeachers)
			teachers.Get("/{id}", s.GetTeacher)
			teachers.Group(func(admin chi.Router) {
				admin.Use(authenticate, adminOnly)
				admin.Post("/", s.CreateTeacher)
				admin.Put("/{id}", s.UpdateTeacher)
				admin.Delete("/{id}", s.DeleteTeacher)
				admin.Post("/{id}/restore", s.RestoreTeacher)
			})
		})

		api.Route("/students", func(students chi.Router) {
			students.With(authenticate, adminOnly).Get("/deleted", s.ListDeletedStudents)
			students.Get("/", s.ListStudents)
			students.Get("/stats", s.StudentStats)
			students.Get("/class/{className}", s.StudentsByClass)
			students.Get("/{id}", s.GetStudent)
			students.Group(func(admin chi.Router) {
				admin.Use(authenticate, adminOnly)
				admin.Post("/", s.CreateStudent)
				admin.Put("/{id}", s.UpdateStudent)
				admin.Delete("/{id}", s.DeleteStudent)
				admin.Post("/{id}/restore", s.RestoreStudent)
			})
		})

		api.Route("/posts", func(posts chi.Router) {
			posts.With(authenticate, adminOnly).Get("/deleted", s.ListDeletedPosts)
			posts.With(optionalAuth).Get("/", s.ListPosts)
			posts.With(optionalAuth).Get("/id/{id}", s.GetPost)
			posts.With(optionalAuth).Get("/slug/{slug}", s.GetPostBySlug)
			posts.Group(func(admin chi.Router) {
				admin.Use(authenticate, adminOnly)
				admin.Post("/", s.CreatePost)
				admin.Put("/{id}", s.UpdatePost)
				admin.Patch("/{id}/status", s.UpdatePostStatus)
				admin.Delete("/{id}", s.DeletePost)
				admin.Post("/{id}/restore", s.RestorePost)
			})
		})

		api.Route("/galleries", func(galleries chi.Router) {
			galleries.With(authenticate, adminOnly).Get("/deleted", s.ListDeletedGalleries)
			galleries.With(optionalAuth).Get("/", s.ListGalleries)
			galleries.Get("/published", s.ListPublishedGalleries)
			galleries.With(optionalAuth).Get("/slug/{slug}", s.GetGalleryBySlug)
			galleries.Group(func(admin chi.Router) {
				admin.Use(authenticate, adminOnly)
				admin.Get("/{id}", s.GetGallery)
				admin.Post("/", s.CreateGallery)
				admin.Put("/{id}", s.UpdateGallery)
				admin.Patch("/{id}/status", s.UpdateGalleryStatus)
				admin.Delete("/{id}", s.DeleteGallery)
				admin.Post("/{id}/restore", s.RestoreGallery)
			})
		})
	})
	return r
}
