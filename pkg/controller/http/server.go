package http

import (
	"net/http"
	"time"

	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/bcm-lab/atropos/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
			r.Get("/{id}", s.getCategory)
			r.Put("/{id}", s.updateCategory)
		})

		r.Route("/parameters", func(r chi.Router) {
			r.Get("/", s.listParameters)
			r.Post("/", s.createParameter)
			r.Get("/{id}", s.getParameter)
			r.Put("/{id}", s.updateParameter)
		})

		r.Route("/rto-options", func(r chi.Router) {
			r.Get("/", s.listRTOOptions)
			r.Post("/", s.createRTOOption)
			r.Get("/{id}", s.getRTOOption)
			r.Put("/{id}", s.updateRTOOption)
		})

		r.Route("/frameworks", func(r chi.Router) {
			r.Get("/", s.listFrameworks)
			r.Post("/", s.createFramework)
			r.Get("/{id}", s.getFramework)
			r.Put("/{id}", s.updateFramework)
			r.Post("/{id}/sample-score", s.sampleScore)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", s.listDepartments)
			r.Post("/", s.createDepartment)
			r.Get("/{id}", s.getDepartment)
			r.Put("/{id}", s.updateDepartment)
		})

		r.Route("/processes", func(r chi.Router) {
			r.Get("/", s.listProcesses)
			r.Post("/", s.createProcess)
			r.Get("/{id}", s.getProcess)
			r.Put("/{id}", s.updateProcess)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", s.listApplications)
			r.Post("/", s.createApplication)
			r.Get("/{id}", s.getApplication)
			r.Put("/{id}", s.updateApplication)
		})

		r.Route("/bia", func(r chi.Router) {
			r.Get("/", s.listBIAs)
			r.Post("/", s.initiateBIA)
			r.Get("/{id}", s.getBIA)
			r.Get("/{id}/workitems", s.listBIAWorkItems)
		})

		r.Route("/workitems/{id}", func(r chi.Router) {
			r.Get("/", s.getWorkItem)
			r.Post("/draft", s.saveDraft)
			r.Post("/submit", s.submitForReview)
			r.Post("/request-clarification", s.requestClarification)
			r.Post("/forward", s.forwardForApproval)
			r.Post("/approve", s.approve)
			r.Post("/reject", s.reject)
		})

		r.Get("/priorities", s.listPriorities)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
