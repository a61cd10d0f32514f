package app

import (
	"hash/maphash"
	"math/rand/v2"
	"sync"

	"github.com/pieceful-app/pieceful-server/internal/handlers"
	"github.com/pieceful-app/pieceful-server/internal/repository"
)

// lockedSource serializes access to an underlying rand source. One generator
// is shared by every request goroutine, and rand/v2 sources are not safe for
// concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func createRand() *rand.Rand {
	return rand.New(&lockedSource{
		src: rand.NewPCG(new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64()),
	})
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	images := handlers.NewImageHandler(a.logger, a.local)
	puzzles := handlers.NewPuzzleHandler(
		a.logger, repository.New(a.db), a.local, a.ws, a.session, createRand(),
	)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("GET /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)

	a.router.HandleFunc("GET /preview", puzzles.Preview)

	a.router.HandleFunc("POST /puzzle", puzzles.Create)
	a.router.HandleFunc("GET /puzzle", puzzles.List)
	a.router.HandleFunc("GET /puzzle/{id}", puzzles.Fetch)
	a.router.HandleFunc("DELETE /puzzle/{id}", puzzles.Delete)
	a.router.HandleFunc("POST /puzzle/{id}/reveal", puzzles.Reveal)
	a.router.HandleFunc("POST /puzzle/{id}/session", puzzles.CompleteSession)
	a.router.HandleFunc("GET /puzzle/{id}/layout", puzzles.Layout)
	a.router.HandleFunc("GET /puzzle/{id}/outline", puzzles.Outline)
	a.router.HandleFunc("/puzzle/{id}/connect", puzzles.ConnectWS)

	a.router.HandleFunc("POST /image", images.Upload)
	a.router.HandleFunc("GET /image/{key}", images.Fetch)
}
