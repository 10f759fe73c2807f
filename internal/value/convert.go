package value

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/goccy/go-yaml"
)

// FromGo converts decoded Go data into a Value. Plain maps carry no order,
// so their members are sorted by key; yaml.MapSlice keeps its order.
func FromGo(data any) (Value, error) {
	switch current := data.(type) {
	case nil:
		return Null(), nil
	case Value:
		return current, nil
	case bool:
		return Bool(current), nil
	case string:
		return String(current), nil
	case []byte:
		return Bytes(current), nil
	case json.Number:
		return ParseNumber(current.String())
	case int:
		return Int(int64(current)), nil
	case int8:
		return Int(int64(current)), nil
	case int16:
		return Int(int64(current)), nil
	case int32:
		return Int(int64(current)), nil
	case int64:
		return Int(current), nil
	case uint:
		return fromUint(uint64(current)), nil
	case uint8:
		return fromUint(uint64(current)), nil
	case uint16:
		return fromUint(uint64(current)), nil
	case uint32:
		return fromUint(uint64(current)), nil
	case uint64:
		return fromUint(current), nil
	case float32:
		return fromFloat(float64(current))
	case float64:
		return fromFloat(current)
	case time.Time:
		return String(current.Format(time.RFC3339Nano)), nil
	case []any:
		items := make([]Value, 0, len(current))
		for _, item := range current {
			v, err := FromGo(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case map[string]any:
		members := make([]Member, 0, len(current))
		for _, key := range slices.Sorted(maps.Keys(current)) {
			v, err := FromGo(current[key])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: key, Value: v})
		}
		return Object(members...), nil
	case map[any]any:
		byKey := make(map[string]any, len(current))
		for k, item := range current {
			byKey[fmt.Sprint(k)] = item
		}
		return FromGo(byKey)
	case yaml.MapSlice:
		members := make([]Member, 0, len(current))
		for _, item := range current {
			v, err := FromGo(item.Value)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: fmt.Sprint(item.Key), Value: v})
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupported, data)
	}
}

func fromUint(u uint64) Value {
	d := new(apd.Decimal)
	d.Coeff.SetUint64(u)
	return Number(d)
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidNumber, f)
	}
	return Number(d), nil
}

// ToGo converts v into plain Go data: map[string]any, []any, json.Number,
// string, bool and nil. Bytes become base64 strings through []byte.
func (v Value) ToGo() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return json.Number(v.number.String())
	case KindString:
		return v.text
	case KindBytes:
		return v.data
	case KindArray:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.ToGo())
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.ToGo()
		}
		return out
	default:
		return nil
	}
}
