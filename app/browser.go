package app

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog/log"
)

// openBrowser hands the URL to the system browser and always prints it,
// so a headless run can still complete the flow by hand.
func openBrowser(target string) {
	fmt.Println("Open the following URL to continue:")
	fmt.Println("  " + target)

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}

	if err := cmd.Start(); err != nil {
		log.Debug().Err(err).Msg("could not launch browser")
	}
}
