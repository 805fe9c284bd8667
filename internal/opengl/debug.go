package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.5-core/gl"

	"github.com/HugoPeters1024/deffered-shading/core"
)

// EnableDebugOutput routes driver debug messages to the logger. Messages are
// never fatal.
func EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		logDebugMessage(severity, gltype, id, message)
	}, nil)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
}

func logDebugMessage(severity, gltype, id uint32, message string) {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		core.LogError("gl", "id", id, "type", debugTypeName(gltype), "msg", message)
	case gl.DEBUG_SEVERITY_MEDIUM:
		core.LogWarn("gl", "id", id, "type", debugTypeName(gltype), "msg", message)
	case gl.DEBUG_SEVERITY_LOW:
		core.LogInfo("gl", "id", id, "type", debugTypeName(gltype), "msg", message)
	default:
		core.LogDebug("gl", "id", id, "type", debugTypeName(gltype), "msg", message)
	}
}

func debugTypeName(t uint32) string {
	switch t {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecated"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefined"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	}
	return "other"
}
