package builtins

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// stdinReader is shared by every type's __read__ adapter, so successive
// reads across different target types consume one continuous line
// stream from os.Stdin rather than each buffering its own lookahead.
var stdinReader = bufio.NewReader(os.Stdin)

func readLine() (string, error) {
	line, err := stdinReader.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// registerGlobalRead binds the global `read(Type)` function: the
// __read__ "input binding" magic method isn't invoked by any other AST
// node, so a global function is the natural external trigger, mirroring
// how `make(Type)` is the external trigger for Type.Create.
func registerGlobalRead(e *evaluator.Evaluator) {
	bindGlobal(e, "read", newInternalFunction(e, e.FunctionType(), "read", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
		if len(args) == 0 || args[0].Type == nil {
			return object.Value{}, source.New(source.CategoryType, &area, source.MsgNotCallable, "nothing")
		}
		typ := args[0].Type
		if typ.Read == nil {
			return object.Value{}, source.New(source.CategoryType, &area, source.MsgCannotCoerce, "String", typ.Name, "__read__")
		}
		return typ.Read(rt, args[0], area)
	}))
}

func parseReadBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func parseReadInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func parseReadReal(s string) (float64, bool) {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return r, err == nil
}
