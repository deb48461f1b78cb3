package tournament

import (
	"github.com/gin-gonic/gin"

	"github.com/firetourneys/arena/config"
	"github.com/firetourneys/arena/internal/store"
)

// TournamentRoutes wires the tournament and registration endpoints. Every
// route is public; authorization is the client's concern, matching the
// platform's demo contract.
func TournamentRoutes(router *gin.RouterGroup, st store.Storage, cfg *config.Config) {
	controller := NewTournamentController(st, cfg)

	router.GET("/tournaments", controller.ListTournaments)
	router.GET("/tournaments/:id", controller.GetTournament)
	router.POST("/tournaments", controller.CreateTournament)
	router.PUT("/tournaments/:id", controller.UpdateTournament)

	router.POST("/tournaments/:id/register", controller.RegisterTeam)
	router.GET("/tournaments/:id/registrations", controller.GetTournamentRegistrations)
	router.GET("/users/:userId/registrations", controller.GetUserRegistrations)
	router.GET("/organizer/:organizerId/registrations", controller.GetOrganizerRegistrations)

	router.GET("/tournament-banner/:id", controller.GetTournamentBanner)
}
