//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/smallyu/go-ecviz/internal/crypto/field"
	"github.com/smallyu/go-ecviz/pkg/ecviz"
)

func main() {
	c := make(chan struct{}, 0)

	fmt.Println("Go ECViz WASM Initialized")

	// Expose Go functions to JS
	js.Global().Set("GoECViz", map[string]interface{}{
		"Compute":       js.FuncOf(Compute),
		"DefaultConfig": js.FuncOf(DefaultConfig),
		"Inverse":       js.FuncOf(Inverse),
	})

	<-c
}

// DefaultConfig returns the default configuration as a JSON string so the
// page can prefill its form.
func DefaultConfig(this js.Value, args []js.Value) interface{} {
	b, _ := json.Marshal(ecviz.DefaultConfig())
	return string(b)
}

// Compute runs one visualization.
// Arguments:
// 0: JSON string of ecviz.Config; missing fields take their defaults
// Returns:
// JSON string of ecviz.Result, or "error: ..." on failure
func Compute(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (jsonConfig)"
	}

	cfg := ecviz.DefaultConfig()
	if err := json.Unmarshal([]byte(args[0].String()), &cfg); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	// The browser has a single thread; extra workers only add scheduling.
	cfg.Workers = 1

	res, err := ecviz.Compute(context.Background(), cfg)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	respBytes, err := json.Marshal(res)
	if err != nil {
		return fmt.Sprintf("error: encode result: %v", err)
	}
	return string(respBytes)
}

// Inverse returns the inverse of args[0] modulo args[1] as a number.
func Inverse(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (a, p)"
	}
	p := int64(args[1].Int())
	if err := field.ValidateModulus(p); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	r, err := field.TryInverse(int64(args[0].Int()), p)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return r
}
