package verso

import (
	"io"
	"log"
	"os"
)

var (
	layoutLogger *log.Logger = log.New(io.Discard, "", 0)
	scrollLogger *log.Logger = log.New(io.Discard, "", 0)
	zoomLogger   *log.Logger = log.New(io.Discard, "", 0)
)

func init() {
	if os.Getenv("VERSO_DEBUG_LAYOUT") == "1" {
		layoutLogger = log.New(os.Stdout, "[layout] ", log.Ltime|log.Lmsgprefix)
	}
	if os.Getenv("VERSO_DEBUG_SCROLL") == "1" {
		scrollLogger = log.New(os.Stdout, "[scroll] ", log.Ltime|log.Lmsgprefix)
	}
	if os.Getenv("VERSO_DEBUG_ZOOM") == "1" {
		zoomLogger = log.New(os.Stdout, "[zoom] ", log.Ltime|log.Lmsgprefix)
	}
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
