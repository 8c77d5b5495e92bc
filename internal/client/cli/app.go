package cli

import (
	"bufio"
	"io"

	"github.com/dmitrijs2005/clinicsite/internal/client/services"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// noDataMessage is printed instead of an error when the team collection
// cannot be read.
const noDataMessage = "No team data available right now."

type App struct {
	authService services.AuthService
	teamService services.TeamService
	log         logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(auth services.AuthService, team services.TeamService, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService: auth,
		teamService: team,
		log:         log.With("module", "cli"),
		reader:      bufio.NewReader(in),
		out:         out,
	}
}
