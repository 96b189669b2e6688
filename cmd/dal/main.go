// Command dal is the daltools dispatcher: a single binary exposing the
// keygen, key, compile, bundle, bundle-view and extract operations over
// the DMD and DALBUNDLE formats.
package main

import (
	"os"

	"go.uber.org/zap"
)

var log *zap.SugaredLogger

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	log = zl.Sugar()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}
