package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Encode bool
	Store  bool
	Eval   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("NBT_DEBUG_DECODE")
	d.Encode = boolEnv("NBT_DEBUG_ENCODE")
	d.Store = boolEnv("NBT_DEBUG_STORE")
	d.Eval = boolEnv("NBT_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Store() bool {
	return d.Store
}
func Eval() bool {
	return d.Eval
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
