package transport

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
)

// CBORCodec is the compact binary counterpart to JSONCodec, for hosts
// that would rather not pay JSON's parsing and size overhead on a
// high-frequency update stream.
type CBORCodec struct{}

type wireSignal struct {
	Width int      `cbor:"width"`
	Bits  []uint64 `cbor:"bits"`
	Undef []uint64 `cbor:"undef"`
}

func (s wireSignal) form() gs.TransportForm {
	return gs.TransportForm{Width: s.Width, Bits: s.Bits, Undef: s.Undef}
}

func wireSignalOf(t gs.TransportForm) wireSignal {
	return wireSignal{Width: t.Width, Bits: t.Bits, Undef: t.Undef}
}

type wireEndpoint struct {
	Gate string `cbor:"gate"`
	Port string `cbor:"port"`
}

func (e wireEndpoint) endpoint() gs.Endpoint { return gs.Endpoint{Gate: e.Gate, Port: e.Port} }

type wireCommand struct {
	Kind string `cbor:"kind"`

	GraphID    string            `cbor:"graphId,omitempty"`
	GateID     string            `cbor:"gateId,omitempty"`
	GateType   string            `cbor:"gateType,omitempty"`
	SubgraphID string            `cbor:"subgraphId,omitempty"`
	IOMap      map[string]string `cbor:"ioMap,omitempty"`

	LinkID string       `cbor:"linkId,omitempty"`
	Source wireEndpoint `cbor:"source,omitempty"`
	Target wireEndpoint `cbor:"target,omitempty"`

	Port   string     `cbor:"port,omitempty"`
	Signal wireSignal `cbor:"signal,omitempty"`

	Params         map[string]interface{} `cbor:"params,omitempty"`
	InitialInputs  map[string]wireSignal  `cbor:"inputSignals,omitempty"`
	InitialOutputs map[string]wireSignal  `cbor:"outputSignals,omitempty"`

	IntervalMillis int64 `cbor:"intervalMillis,omitempty"`
}

// DecodeCommand decodes one CBOR-encoded command envelope.
func (CBORCodec) DecodeCommand(data []byte) (Command, error) {
	var w wireCommand
	if err := cbor.Unmarshal(data, &w); err != nil {
		return Command{}, errors.Wrap(err, "transport: decode cbor command")
	}
	if w.Kind == "" {
		return Command{}, errors.New("transport: command missing \"kind\"")
	}
	cmd := Command{
		Kind:           w.Kind,
		GraphID:        w.GraphID,
		GateID:         w.GateID,
		GateType:       w.GateType,
		SubgraphID:     w.SubgraphID,
		IOMap:          w.IOMap,
		LinkID:         w.LinkID,
		Source:         w.Source.endpoint(),
		Target:         w.Target.endpoint(),
		Port:           w.Port,
		Signal:         w.Signal.form(),
		Params:         w.Params,
		IntervalMillis: w.IntervalMillis,
	}
	if w.InitialInputs != nil {
		cmd.InitialInputs = make(map[string]gs.TransportForm, len(w.InitialInputs))
		for k, v := range w.InitialInputs {
			cmd.InitialInputs[k] = v.form()
		}
	}
	if w.InitialOutputs != nil {
		cmd.InitialOutputs = make(map[string]gs.TransportForm, len(w.InitialOutputs))
		for k, v := range w.InitialOutputs {
			cmd.InitialOutputs[k] = v.form()
		}
	}
	return cmd, nil
}

type wireGateUpdate struct {
	GraphID string                `cbor:"graphId"`
	GateID  string                `cbor:"gateId"`
	Ports   map[string]wireSignal `cbor:"ports"`
}

type wireUpdateMessage struct {
	Tick             int64            `cbor:"tick"`
	HasPendingEvents bool             `cbor:"hasPendingEvents"`
	Updates          []wireGateUpdate `cbor:"updates"`
}

// EncodeUpdate encodes an UpdateMessage to CBOR.
func (CBORCodec) EncodeUpdate(msg gs.UpdateMessage) ([]byte, error) {
	w := wireUpdateMessage{
		Tick:             msg.Tick,
		HasPendingEvents: msg.HasPendingEvents,
		Updates:          make([]wireGateUpdate, len(msg.Updates)),
	}
	for i, u := range msg.Updates {
		ports := make(map[string]wireSignal, len(u.Ports))
		for port, sig := range u.Ports {
			ports[port] = wireSignalOf(sig.Bits())
		}
		w.Updates[i] = wireGateUpdate{GraphID: u.GraphID, GateID: u.GateID, Ports: ports}
	}
	data, err := cbor.Marshal(w)
	if err != nil {
		return nil, errors.Wrap(err, "transport: encode cbor update")
	}
	return data, nil
}
