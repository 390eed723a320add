//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inkframe/inkframe/backend-go/internal/command"
	"github.com/inkframe/inkframe/backend-go/internal/document"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/render"
)

var editor *engine.Editor

func main() {
	editor = engine.NewEditor()

	// Create the editor API object
	inkframeEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → editor) ---
	inkframeEditor.Set("command", js.FuncOf(runCommand))
	inkframeEditor.Set("loadScene", js.FuncOf(loadScene))
	inkframeEditor.Set("loadSampleScene", js.FuncOf(loadSampleScene))
	inkframeEditor.Set("clear", js.FuncOf(clearScene))

	// --- Queries (frontend ← editor) ---
	inkframeEditor.Set("render", js.FuncOf(renderCommands))
	inkframeEditor.Set("hitTest", js.FuncOf(hitTest))
	inkframeEditor.Set("getScene", js.FuncOf(getScene))
	inkframeEditor.Set("exportSVG", js.FuncOf(exportSVG))

	// Register on global scope
	js.Global().Set("inkframeEditor", inkframeEditor)

	// Signal that WASM is ready
	js.Global().Set("inkframeWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorValue(msg string) js.Value {
	return js.ValueOf(map[string]any{"error": msg})
}

// runCommand takes a command JSON string and returns the result as a JSON
// string, the same messages the websocket carries.
func runCommand(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue("missing command JSON")
	}

	var cmd command.Command
	if err := json.Unmarshal([]byte(args[0].String()), &cmd); err != nil {
		return errorValue("invalid command JSON")
	}

	res, err := command.Dispatch(editor, cmd)
	if err != nil {
		res = command.Result{ID: cmd.ID, Type: command.TypeError, Error: err.Error()}
	}
	data, err := json.Marshal(res)
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(string(data))
}

func loadScene(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue("missing scene JSON")
	}
	if err := editor.ImportScene([]byte(args[0].String())); err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(map[string]any{"ok": true})
}

func loadSampleScene(this js.Value, args []js.Value) any {
	editor.ReplaceScene(document.NewSampleScene())
	return js.ValueOf(map[string]any{"ok": true})
}

func clearScene(this js.Value, args []js.Value) any {
	editor.Clear()
	return nil
}

func renderCommands(this js.Value, args []js.Value) any {
	s, err := render.DrawCommandsToJSON(editor.RenderCommands())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(s)
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(editor.HitTest(args[0].Float(), args[1].Float()))
}

func getScene(this js.Value, args []js.Value) any {
	data, err := editor.ExportScene()
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(string(data))
}

func exportSVG(this js.Value, args []js.Value) any {
	width, height := 1280, 720
	if len(args) >= 2 {
		width, height = args[0].Int(), args[1].Int()
	}
	return js.ValueOf(editor.ExportSVG(width, height))
}
