package callmap

// Map derives the argument pair needed to call sub from a concrete
// call intended for super. Use the Arg options to supply the
// superfunction call's positional values (Args), its named values
// (Named, NamedValues, FromStruct), and the override mapping
// (Override, Overrides).
//
// sub and super are either *Signature values or marker-struct
// functions; see Extract for the accepted forms.
//
// The superfunction call is flattened into a name-to-value mapping
// first, then every sub parameter resolves by name against that
// mapping, falling back to the overrides, falling back to its own
// declared default. See Resolve for the exact rules.
func Map(sub, super interface{}, opts ...Arg) (*Call, error) {
	builder, buildErr := newArgBuilder(opts...)
	if buildErr != nil {
		return nil, buildErr
	}
	log := builder.logger

	subSig, err := Extract(sub)
	if err != nil {
		return nil, err
	}
	superSig, err := Extract(super)
	if err != nil {
		return nil, err
	}

	log.Trace("flattening superfunction call",
		"super", superSig.Name(),
		"positional", len(builder.positional),
		"named", len(builder.named))
	bound, err := superSig.bind(log, builder.positional, builder.named)
	if err != nil {
		return nil, err
	}

	log.Trace("resolving subfunction call", "sub", subSig.Name())
	return resolve(log, subSig, bound, builder.overrides)
}
