// Package analysis defines the parameters handed from the configuration to
// the pair and angle distribution builders.
//
// The builders themselves live with the simulation engine. This package only
// fixes the boundary: a [Params] value read from a provided configuration
// section, and the [Distribution] interface the engine implements.
//
//	p, ok := cfg.PairParams()
//	if ok {
//	    if err := p.Validate(); err != nil {
//	        return err
//	    }
//	    h, err := dist.Pair(ids, r, p)
//	}
package analysis
