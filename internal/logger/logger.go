package logger

import (
	"github.com/sirupsen/logrus"
)

// Log is usable from package init onward; Init only reconfigures it, so
// error paths that run before Init never hit a nil logger.
var Log = logrus.New()

// Init sets the level and output format. JSON output for production,
// text for development.
func Init(level, environment string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if environment == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}
