package transport

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
)

// Command is the decoded form of one host->engine request, covering
// every command kind Dispatch handles (§4.3, §4.5, §6). Engine methods
// such as SetInputSignal, Inspect and Flush have no command kind.
type Command struct {
	Kind string

	GraphID    string
	GateID     string
	GateType   string
	SubgraphID string
	IOMap      map[string]string

	LinkID string
	Source gs.Endpoint
	Target gs.Endpoint

	Port   string
	Signal gs.TransportForm

	Params         map[string]interface{}
	InitialInputs  map[string]gs.TransportForm
	InitialOutputs map[string]gs.TransportForm

	IntervalMillis int64
}

// JSONCodec encodes UpdateMessages and decodes Commands using gjson/sjson
// rather than encoding/json, so a host can send loosely-shaped JSON
// (missing fields default to their zero value instead of failing to
// parse) and the engine can build its outgoing frames without declaring
// a matching Go struct and its json tags.
type JSONCodec struct{}

func endpointFromJSON(r gjson.Result) gs.Endpoint {
	return gs.Endpoint{Gate: r.Get("gate").String(), Port: r.Get("port").String()}
}

func signalFromJSON(r gjson.Result) gs.TransportForm {
	width := int(r.Get("width").Int())
	var bits, undef []uint64
	for _, w := range r.Get("bits").Array() {
		bits = append(bits, uint64(w.Int()))
	}
	for _, w := range r.Get("undef").Array() {
		undef = append(undef, uint64(w.Int()))
	}
	return gs.TransportForm{Width: width, Bits: bits, Undef: undef}
}

// DecodeCommand parses one JSON command envelope. Only the kind field is
// mandatory; everything else defaults to its zero value when the
// envelope omits it, since not every command needs every field.
func (JSONCodec) DecodeCommand(data []byte) (Command, error) {
	if !gjson.ValidBytes(data) {
		return Command{}, errors.New("transport: invalid JSON command")
	}
	root := gjson.ParseBytes(data)
	kind := root.Get("kind").String()
	if kind == "" {
		return Command{}, errors.New("transport: command missing \"kind\"")
	}

	cmd := Command{
		Kind:           kind,
		GraphID:        root.Get("graphId").String(),
		GateID:         root.Get("gateId").String(),
		GateType:       root.Get("gateType").String(),
		SubgraphID:     root.Get("subgraphId").String(),
		LinkID:         root.Get("linkId").String(),
		Port:           root.Get("port").String(),
		IntervalMillis: root.Get("intervalMillis").Int(),
	}
	if src := root.Get("source"); src.Exists() {
		cmd.Source = endpointFromJSON(src)
	}
	if tgt := root.Get("target"); tgt.Exists() {
		cmd.Target = endpointFromJSON(tgt)
	}
	if sig := root.Get("signal"); sig.Exists() {
		cmd.Signal = signalFromJSON(sig)
	}
	if ioMap := root.Get("ioMap"); ioMap.IsObject() {
		cmd.IOMap = make(map[string]string)
		ioMap.ForEach(func(k, v gjson.Result) bool {
			cmd.IOMap[k.String()] = v.String()
			return true
		})
	}
	if params := root.Get("params"); params.IsObject() {
		cmd.Params = params.Value().(map[string]interface{})
	}
	if in := root.Get("inputSignals"); in.IsObject() {
		cmd.InitialInputs = make(map[string]gs.TransportForm)
		in.ForEach(func(k, v gjson.Result) bool {
			cmd.InitialInputs[k.String()] = signalFromJSON(v)
			return true
		})
	}
	if out := root.Get("outputSignals"); out.IsObject() {
		cmd.InitialOutputs = make(map[string]gs.TransportForm)
		out.ForEach(func(k, v gjson.Result) bool {
			cmd.InitialOutputs[k.String()] = signalFromJSON(v)
			return true
		})
	}
	return cmd, nil
}

// EncodeUpdate renders an UpdateMessage as a JSON object:
//
//	{"tick": N, "hasPendingEvents": bool, "updates": [{"graphId", "gateId", "ports": {...}}]}
func (JSONCodec) EncodeUpdate(msg gs.UpdateMessage) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	if doc, err = sjson.SetBytes(doc, "tick", msg.Tick); err != nil {
		return nil, errors.Wrap(err, "transport: encode tick")
	}
	if doc, err = sjson.SetBytes(doc, "hasPendingEvents", msg.HasPendingEvents); err != nil {
		return nil, errors.Wrap(err, "transport: encode hasPendingEvents")
	}
	if doc, err = sjson.SetRawBytes(doc, "updates", []byte("[]")); err != nil {
		return nil, errors.Wrap(err, "transport: encode updates array")
	}
	for i, u := range msg.Updates {
		base := "updates." + strconv.Itoa(i) + "."
		if doc, err = sjson.SetBytes(doc, base+"graphId", u.GraphID); err != nil {
			return nil, errors.Wrap(err, "transport: encode update graphId")
		}
		if doc, err = sjson.SetBytes(doc, base+"gateId", u.GateID); err != nil {
			return nil, errors.Wrap(err, "transport: encode update gateId")
		}
		for port, sig := range u.Ports {
			form := sig.Bits()
			p := base + "ports." + port + "."
			if doc, err = sjson.SetBytes(doc, p+"width", form.Width); err != nil {
				return nil, errors.Wrap(err, "transport: encode signal width")
			}
			if doc, err = sjson.SetBytes(doc, p+"bits", form.Bits); err != nil {
				return nil, errors.Wrap(err, "transport: encode signal bits")
			}
			if doc, err = sjson.SetBytes(doc, p+"undef", form.Undef); err != nil {
				return nil, errors.Wrap(err, "transport: encode signal undef")
			}
		}
	}
	return doc, nil
}
