package builtins

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lis05/cotton-go/internal/evaluator"
	"github.com/lis05/cotton-go/internal/object"
	"github.com/lis05/cotton-go/internal/source"
)

// loadJSONModule exposes parse/stringify over Cotton's own value model,
// the domain-stack addition described in the design notes: json.parse
// walks a gjson.Result tree into Arrays/Records/primitives, and
// json.stringify walks a Cotton value back into a JSON document by
// repeated sjson.SetRaw calls, so both halves of the pack's JSON pair
// get exercised rather than just one.
func loadJSONModule(e *evaluator.Evaluator) (object.Value, bool) {
	exports := map[string]object.Value{
		"parse": fn(e, "parse", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			s, ok := asStringBuf(args[0])
			if !ok {
				return object.Value{}, source.New(source.CategoryType, &area, source.MsgUnsupportedOperand, "parse", 0, args[0].TypeName())
			}
			if !gjson.Valid(s.String()) {
				return object.Value{}, source.New(source.CategoryModule, &area, source.MsgModuleLoadFailed, "json", "invalid document")
			}
			return fromGJSON(e, gjson.Parse(s.String())), nil
		}),

		"stringify": fn(e, "stringify", func(rt object.Evaluator, args []object.Value, area source.Area) (object.Value, error) {
			doc, err := toJSON(args[0])
			if err != nil {
				return object.Value{}, source.New(source.CategoryModule, &area, source.MsgModuleLoadFailed, "json", err.Error())
			}
			return e.StringValue(doc), nil
		}),
	}
	return newModule(e, "json", exports), true
}

// fromGJSON converts a parsed gjson.Result into the corresponding Cotton
// value: objects and arrays become Record/Array values (a JSON object's
// field order isn't semantically meaningful, so it's rebuilt through the
// same ad-hoc record machinery the gc module's status() uses), scalars
// become the matching primitive.
func fromGJSON(e *evaluator.Evaluator, r gjson.Result) object.Value {
	switch r.Type {
	case gjson.True, gjson.False:
		return e.BoolValue(r.Bool())
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return e.IntegerValue(int64(r.Num))
		}
		return e.RealValue(r.Num)
	case gjson.String:
		return e.StringValue(r.String())
	case gjson.Null:
		return e.NothingValue()
	case gjson.JSON:
		if r.IsArray() {
			var elems []object.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(e, v))
				return true
			})
			return e.ArrayValue(elems)
		}
		var fields []string
		r.ForEach(func(k, _ gjson.Result) bool {
			fields = append(fields, k.String())
			return true
		})
		t := e.MakeRecordType("JSONObject", fields)
		rec := t.Create(e)
		fieldMap := rec.Payload.(*object.Record).Fields
		r.ForEach(func(k, v gjson.Result) bool {
			fieldMap[k.String()] = fromGJSON(e, v)
			return true
		})
		return rec
	default:
		return e.NothingValue()
	}
}

// toJSON renders v as a JSON fragment, using sjson.SetRaw to splice
// nested fragments into an object/array document incrementally — sjson
// works on a document string rather than a tree, so Arrays/Records are
// rendered depth-first and spliced bottom-up.
func toJSON(v object.Value) (string, error) {
	if v.Type == nil {
		return "null", nil
	}
	switch p := v.Payload.(type) {
	case bool:
		return strconv.FormatBool(p), nil
	case int64:
		return strconv.FormatInt(p, 10), nil
	case float64:
		return strconv.FormatFloat(p, 'g', -1, 64), nil
	case byte:
		return strconv.Quote(string(rune(p))), nil
	case *object.StringBuf:
		return strconv.Quote(p.String()), nil
	case *object.Array:
		doc := "[]"
		for i, elem := range p.Elements {
			frag, err := toJSON(elem)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, strconv.Itoa(i), frag)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	case *object.Record:
		doc := "{}"
		for k, fv := range p.Fields {
			frag, err := toJSON(fv)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, k, frag)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return "null", nil
	}
}
