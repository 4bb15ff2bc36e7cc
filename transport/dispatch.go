package transport

import (
	"time"

	"github.com/pkg/errors"

	gs "github.com/digital-logic-and-computer-design/digitaljs"
)

// Dispatch applies a decoded Command to an engine, translating it into
// the matching Engine method call (§4.3, §4.5, §6). It is the one place
// that knows the wire vocabulary of command kinds.
func Dispatch(e *gs.Engine, cmd Command) error {
	switch cmd.Kind {
	case "addGraph":
		return e.AddGraph(cmd.GraphID)
	case "addGate":
		spec := gs.GateSpec{ID: cmd.GateID, Type: cmd.GateType, Params: cmd.Params}
		if cmd.InitialInputs != nil {
			spec.InitialInputs = make(map[string]gs.Signal, len(cmd.InitialInputs))
			for port, form := range cmd.InitialInputs {
				spec.InitialInputs[port] = gs.FromTransportForm(form)
			}
		}
		if cmd.InitialOutputs != nil {
			spec.InitialOutputs = make(map[string]gs.Signal, len(cmd.InitialOutputs))
			for port, form := range cmd.InitialOutputs {
				spec.InitialOutputs[port] = gs.FromTransportForm(form)
			}
		}
		return e.AddGate(cmd.GraphID, spec)
	case "addSubcircuit":
		return e.AddSubcircuit(cmd.GraphID, cmd.GateID, cmd.SubgraphID, cmd.IOMap)
	case "addLink":
		return e.AddLink(cmd.GraphID, gs.LinkSpec{ID: cmd.LinkID, Source: cmd.Source, Target: cmd.Target})
	case "removeLink":
		return e.RemoveLink(cmd.GraphID, cmd.LinkID)
	case "removeGate":
		return e.RemoveGate(cmd.GraphID, cmd.GateID)
	case "changeInput":
		return e.ChangeInput(cmd.GraphID, cmd.GateID, gs.FromTransportForm(cmd.Signal))
	case "observeGraph":
		return e.ObserveGraph(cmd.GraphID)
	case "unobserveGraph":
		return e.UnobserveGraph(cmd.GraphID)
	case "interval":
		return e.SetInterval(time.Duration(cmd.IntervalMillis) * time.Millisecond)
	case "start":
		// Argumentless per §6: IntervalMillis is 0 unless a caller stuffs
		// one in, in which case Engine.Start treats 0 as "use whatever
		// SetInterval last configured" rather than rejecting it.
		return e.Start(time.Duration(cmd.IntervalMillis) * time.Millisecond)
	case "startFast":
		return e.StartFast()
	case "stop":
		return e.Stop()
	case "updateGates":
		return e.UpdateGates()
	case "updateGatesNext":
		return e.UpdateGatesNext()
	default:
		return errors.Errorf("transport: unknown command kind %q", cmd.Kind)
	}
}
