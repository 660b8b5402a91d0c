package sandphys

// RegisterBasicMaterials populates r with the eleven standard
// materials: Air (already present at id 0), Stone, Sand, Water, Oil,
// Lava, Fire, Steam, Smoke, Wood, Ice. It records their ids on the
// registry's well-known accessors.
func RegisterBasicMaterials(r *MaterialRegistry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wellKnown.stone = r.register(MaterialProperties{
		Name: "Stone", Category: "terrain", Type: TypeSolid,
		Color:               Color{120, 120, 125, 255},
		Density:             2600,
		Friction:            0.9,
		Movable:             false,
		MeltingPoint:        f32(1200),
		ThermalConductivity: 2.1,
		SpecificHeat:        840,
	})

	r.wellKnown.sand = r.register(MaterialProperties{
		Name: "Sand", Category: "powder", Type: TypePowder,
		Color:               Color{194, 178, 128, 255},
		Variation:           0.08,
		Density:             1600,
		Friction:            0.6,
		Movable:             true,
		MeltingPoint:        f32(1700),
		ThermalConductivity: 0.3,
		SpecificHeat:        830,
	})

	r.wellKnown.water = r.register(MaterialProperties{
		Name: "Water", Category: "liquid", Type: TypeLiquid,
		Color:               Color{64, 120, 220, 200},
		Density:             1000,
		Viscosity:           0.1,
		Dispersion:          6,
		Movable:             true,
		FreezingPoint:       f32(0),
		BoilingPoint:        f32(100),
		ThermalConductivity: 0.6,
		SpecificHeat:        4186,
		StateChanges: []StateChangeRule{
			{TargetMaterial: 0 /* Steam, patched below */, TemperatureThreshold: 100, Probability: 0.3},
			{TargetMaterial: 0 /* Ice, patched below */, TemperatureThreshold: -0.01, Probability: 0.2},
		},
	})

	r.wellKnown.oil = r.register(MaterialProperties{
		Name: "Oil", Category: "liquid", Type: TypeLiquid,
		Color:               Color{90, 70, 40, 220},
		Density:             850,
		Viscosity:           0.4,
		Dispersion:          4,
		Movable:             true,
		Flammable:           true,
		Flammability:        0.6,
		BurnRate:            0.4,
		IgnitionPoint:       f32(250),
		ThermalConductivity: 0.15,
		SpecificHeat:        1970,
	})

	r.wellKnown.lava = r.register(MaterialProperties{
		Name: "Lava", Category: "liquid", Type: TypeLiquid,
		Color:               Color{210, 70, 20, 255},
		Emissive:            true,
		EmissiveStrength:    1.5,
		Density:             2000,
		Viscosity:           0.8,
		Dispersion:          2,
		Movable:             true,
		FreezingPoint:       f32(700),
		ThermalConductivity: 1.5,
		SpecificHeat:        1500,
		Behavior:            BehaviorHot,
	})

	r.wellKnown.fire = r.register(MaterialProperties{
		Name: "Fire", Category: "combustion", Type: TypeFire,
		Color:               Color{255, 120, 30, 255},
		Emissive:            true,
		EmissiveStrength:    2.0,
		Density:             0.2,
		Movable:             true,
		Lifetime:            40,
		ThermalConductivity: 0.8,
		SpecificHeat:        1000,
		Behavior:            BehaviorHot,
	})

	r.wellKnown.steam = r.register(MaterialProperties{
		Name: "Steam", Category: "gas", Type: TypeGas,
		Color:               Color{220, 220, 230, 140},
		Density:             0.6,
		Dispersion:          5,
		Movable:             true,
		Lifetime:            300,
		FreezingPoint:       f32(100), // condenses back to Water below 100C
		ThermalConductivity: 0.02,
		SpecificHeat:        2080,
	})

	r.wellKnown.smoke = r.register(MaterialProperties{
		Name: "Smoke", Category: "gas", Type: TypeGas,
		Color:               Color{90, 90, 90, 160},
		Density:             0.3,
		Dispersion:          5,
		Movable:             true,
		Lifetime:            250,
		ThermalConductivity: 0.02,
		SpecificHeat:        1100,
		Behavior:            BehaviorDisappears,
	})

	r.wellKnown.wood = r.register(MaterialProperties{
		Name: "Wood", Category: "terrain", Type: TypeSolid,
		Color:               Color{110, 70, 35, 255},
		Density:             700,
		Friction:            0.7,
		Movable:             false,
		Flammable:           true,
		Flammability:        0.4,
		BurnRate:            0.25,
		IgnitionPoint:       f32(300),
		ThermalConductivity: 0.15,
		SpecificHeat:        1700,
		Behavior:            BehaviorBreakable,
	})

	r.wellKnown.ice = r.register(MaterialProperties{
		Name: "Ice", Category: "terrain", Type: TypeSolid,
		Color:               Color{190, 225, 240, 230},
		Density:             920,
		Friction:            0.1,
		Movable:             false,
		MeltingPoint:        f32(0),
		ThermalConductivity: 2.2,
		SpecificHeat:        2090,
	})

	// Patch forward references to ids that didn't exist yet when Water
	// and Ice were registered.
	water := &r.byID[r.wellKnown.water]
	water.StateChanges[0].TargetMaterial = r.wellKnown.steam
	water.StateChanges[1].TargetMaterial = r.wellKnown.ice

	steam := &r.byID[r.wellKnown.steam]
	steam.StateChanges = []StateChangeRule{
		{TargetMaterial: r.wellKnown.water, TemperatureThreshold: -100, Probability: 0.25},
	}

	ice := &r.byID[r.wellKnown.ice]
	ice.StateChanges = []StateChangeRule{
		{TargetMaterial: r.wellKnown.water, TemperatureThreshold: 0, Probability: 0.3},
	}

	fire := &r.byID[r.wellKnown.fire]
	fire.StateChanges = []StateChangeRule{
		{TargetMaterial: r.wellKnown.smoke, TemperatureThreshold: -100, Probability: 1},
	}

	oil := &r.byID[r.wellKnown.oil]
	oil.Reactions = []ReactionRule{
		{ReactantMaterial: r.wellKnown.fire, ResultMaterial: r.wellKnown.fire, Probability: 0.5},
	}

	wood := &r.byID[r.wellKnown.wood]
	wood.Reactions = []ReactionRule{
		{ReactantMaterial: r.wellKnown.fire, ResultMaterial: r.wellKnown.fire, Probability: 0.3},
	}
}
