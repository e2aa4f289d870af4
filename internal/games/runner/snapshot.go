package runner

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// Field tags allow the platform layer to dump it with msgpack.
type Snapshot struct {
	Tick        int     `msgpack:"tick"`
	Phase       string  `msgpack:"phase"`
	Mode        string  `msgpack:"mode"`
	Level       string  `msgpack:"level"`
	Scene       string  `msgpack:"scene"`
	Score       int     `msgpack:"score"`
	Lives       int     `msgpack:"lives"`
	Paused      bool    `msgpack:"paused"`
	Multiplier  float64 `msgpack:"multiplier"`
	Tier        int     `msgpack:"tier"`
	SceneBoost  float64 `msgpack:"scene_boost"`
	ScrollSpeed float64 `msgpack:"scroll_speed"`

	Player       PlayerView        `msgpack:"player"`
	Obstacles    []ObstacleView    `msgpack:"obstacles"`
	Projectiles  []ProjectileView  `msgpack:"projectiles"`
	Collectibles []CollectibleView `msgpack:"collectibles"`
	Decorations  []DecorationView  `msgpack:"decorations"`

	PowerUp         string    `msgpack:"powerup,omitempty"`
	PowerUpFraction float64   `msgpack:"powerup_fraction,omitempty"`
	Quiz            *QuizView `msgpack:"quiz,omitempty"`
}

// PlayerView is the renderable player state.
type PlayerView struct {
	X, Y, W, H   float64
	VY           float64
	Grounded     bool
	JumpCount    int
	Invulnerable int
}

// ObstacleView is the renderable state of one obstacle.
type ObstacleView struct {
	Kind       string
	X, Y, W, H float64
	Alpha      float64 // Teleporter opacity; 1 for every other kind
	Dashing    bool
	Active     bool // Falling hazard has been triggered
}

// ProjectileView is the renderable state of one projectile.
type ProjectileView struct {
	Owner      string
	X, Y, W, H float64
}

// CollectibleView is the renderable state of one pickup.
type CollectibleView struct {
	Kind       string
	X, Y, W, H float64
}

// DecorationView is the renderable state of one background swimmer.
type DecorationView struct {
	Variant int
	X, Y    float64
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	st := s.State()
	snap := Snapshot{
		Tick:        s.ticks,
		Phase:       st.Phase,
		Mode:        s.mode.ID,
		Level:       string(s.level),
		Scene:       s.Scene(),
		Score:       st.Score,
		Lives:       st.Lives,
		Paused:      st.Paused,
		Multiplier:  s.difficulty.Multiplier(),
		Tier:        s.difficulty.Tier(),
		SceneBoost:  s.difficulty.Boost(),
		ScrollSpeed: s.difficulty.ScrollSpeed(s.cfg.Physics.BaseScroll),
		Player: PlayerView{
			X:            s.player.X,
			Y:            s.player.Y,
			W:            s.player.W,
			H:            s.player.H,
			VY:           s.player.VY,
			Grounded:     s.player.Grounded,
			JumpCount:    s.player.JumpCount,
			Invulnerable: s.player.Invulnerable,
		},
	}

	snap.Obstacles = make([]ObstacleView, 0, len(s.obstacles))
	for _, o := range s.obstacles {
		v := ObstacleView{Kind: o.Kind.String(), X: o.X, Y: o.Y, W: o.W, H: o.H, Alpha: 1}
		switch o.Kind {
		case KindTeleporter:
			v.Alpha = o.Teleport.Alpha
		case KindDasher:
			v.Dashing = o.Dasher.Dashing
		case KindFalling:
			v.Active = o.Faller.Active
		}
		snap.Obstacles = append(snap.Obstacles, v)
	}

	snap.Projectiles = make([]ProjectileView, 0, len(s.projectiles))
	for _, p := range s.projectiles {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{Owner: p.Owner.String(), X: p.X, Y: p.Y, W: p.W, H: p.H})
	}

	snap.Collectibles = make([]CollectibleView, 0, len(s.collectibles))
	for _, c := range s.collectibles {
		snap.Collectibles = append(snap.Collectibles, CollectibleView{Kind: c.Kind.String(), X: c.X, Y: c.Y, W: c.W, H: c.H})
	}

	snap.Decorations = make([]DecorationView, 0, len(s.decorations))
	for _, d := range s.decorations {
		snap.Decorations = append(snap.Decorations, DecorationView{Variant: d.Variant, X: d.X, Y: d.Y})
	}

	if kind, frac := s.PowerUp(); kind != PowerNone {
		snap.PowerUp = kind.String()
		snap.PowerUpFraction = frac
	}
	if v, ok := s.quiz.View(); ok {
		snap.Quiz = &v
	}
	return snap
}
