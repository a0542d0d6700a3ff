package preset

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

const schemaSource = `
#Preset: {
	name:       string
	iterations: int & >=0
	axiom:      string
	step:       number & >0
	angle:      number
	seed?:      int & >=0
	replay?:    "cumulative" | "final"
	rules?: {[=~"^.$"]: string}
	instances?: {[=~"^.$"]: string & !=""}
}
`

var (
	schemaMu  sync.Mutex
	cueCtx    *cue.Context
	presetDef cue.Value
)

func init() {
	cueCtx = cuecontext.New()
	presetDef = cueCtx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Preset"))
	if err := presetDef.Err(); err != nil {
		panic(fmt.Sprintf("preset: bad schema: %v", err))
	}
}

// Validate checks p against the preset schema.
func Validate(p *Preset) error {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	v := presetDef.Unify(cueCtx.Encode(p))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("preset %s: %w: %v", p.Name, ErrInvalidPreset, err)
	}
	return nil
}
