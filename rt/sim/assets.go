package sim

import "stepkit/rt"

// assetStore resolves named materials. Unknown names get the default
// material: asset lookup failures must never stop a caller from drawing.
type assetStore struct {
	log  rt.Logger
	mats map[string]*rt.Material
	def  *rt.Material
}

func newAssetStore(log rt.Logger) *assetStore {
	s := &assetStore{
		log:  log,
		mats: make(map[string]*rt.Material),
		def:  &rt.Material{Name: "default", Tint: rt.ColorWhite},
	}
	// Built-in UI materials.
	s.register("ui/backplate", rt.RGB(0x2A, 0x2C, 0x33))
	s.register("ui/radio_on", rt.RGB(0x4C, 0xC2, 0x66))
	s.register("ui/radio_off", rt.RGB(0x3A, 0x3D, 0x47))
	return s
}

func (s *assetStore) register(name string, tint rt.Color) {
	s.mats[name] = &rt.Material{Name: name, Tint: tint}
}

func (s *assetStore) Material(name string) *rt.Material {
	if m, ok := s.mats[name]; ok {
		return m
	}
	s.log.Diag("material not found, using default", "name", name)
	return s.def
}
