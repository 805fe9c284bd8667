package core

import (
	"errors"
	"os"
)

// Initialization failures. Each class terminates the process with its own
// exit status, see ExitCode.
var (
	ErrGLFWInit              = errors.New("glfw initialization failed")
	ErrWindowCreate          = errors.New("window creation failed")
	ErrGLInit                = errors.New("opengl initialization failed")
	ErrShaderCompile         = errors.New("shader compile or link failed")
	ErrMeshLoad              = errors.New("mesh load failed")
	ErrIncompleteFramebuffer = errors.New("framebuffer incomplete")
	ErrTextureDecode         = errors.New("texture decode failed")
	ErrConfig                = errors.New("invalid configuration")
)

const (
	ExitOK                    = 0
	ExitUnknown               = 1
	ExitGLFWInit              = 2
	ExitWindowCreate          = 3
	ExitGLInit                = 4
	ExitShaderCompile         = 5
	ExitMeshLoad              = 6
	ExitIncompleteFramebuffer = 7
	ExitTextureDecode         = 8
	ExitConfig                = 9
)

var exitCodes = []struct {
	err  error
	code int
}{
	{ErrGLFWInit, ExitGLFWInit},
	{ErrWindowCreate, ExitWindowCreate},
	{ErrGLInit, ExitGLInit},
	{ErrShaderCompile, ExitShaderCompile},
	{ErrMeshLoad, ExitMeshLoad},
	{ErrIncompleteFramebuffer, ExitIncompleteFramebuffer},
	{ErrTextureDecode, ExitTextureDecode},
	{ErrConfig, ExitConfig},
}

// ExitCode maps an error to the exit status of its failure class.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ExitUnknown
}

// exit is swapped out by tests.
var exit = os.Exit

// Fatal logs err and terminates the process with the exit status of its
// failure class. There is no degraded mode to fall back to.
func Fatal(err error) {
	code := ExitCode(err)
	Logger().Error("fatal", "err", err, "exit", code)
	exit(code)
}
