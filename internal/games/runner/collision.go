package runner

// resolveCollisions checks every collision pair for this tick. Pairs are
// processed in a fixed order; when a hit opens a quiz or ends the run the
// remaining pairs wait for the next active tick.
func (s *Session) resolveCollisions() {
	cc := s.cfg.Collision
	solidAlpha := s.cfg.Enemies.TeleSolidAlpha
	body := s.player.Rect()

	// Player against obstacles
	hitBox := body.Inset(cc.ObstaclePadding)
	for _, o := range s.obstacles {
		if !o.Solid(solidAlpha) {
			continue
		}
		if hitBox.Intersects(o.Rect().Inset(cc.ObstaclePadding)) {
			s.applyOrDeferDamage(sourceOf(o.Kind))
			if s.interrupted() {
				return
			}
		}
	}

	// Enemy shots against the player
	shotBox := body.Inset(cc.ProjectilePadding)
	hitShots := make(map[*Projectile]bool)
	for _, p := range s.projectiles {
		if p.Owner != OwnerEnemy {
			continue
		}
		if !shotBox.Intersects(p.Rect().Inset(cc.ProjectilePadding)) {
			continue
		}
		hitShots[p] = true
		s.emit(EventExplosion, string(SourceProjectile), 0)
		s.applyOrDeferDamage(SourceProjectile)
		if s.interrupted() {
			break
		}
	}

	// Player shots against obstacles
	hitObstacles := make(map[*Obstacle]bool)
	if !s.interrupted() {
		for _, p := range s.projectiles {
			if p.Owner != OwnerPlayer {
				continue
			}
			for _, o := range s.obstacles {
				if hitObstacles[o] || !o.Solid(solidAlpha) {
					continue
				}
				if p.Rect().Intersects(o.Rect()) {
					hitShots[p] = true
					hitObstacles[o] = true
					s.emit(EventDestroyReward, o.Kind.String(), s.cfg.Scoring.DestroyPoints)
					s.addScore(s.cfg.Scoring.DestroyPoints)
					break
				}
			}
		}
	}
	s.removeHits(hitShots, hitObstacles)
	if s.interrupted() {
		return
	}

	// Player against pickups
	pickBox := body.Inset(cc.CollectiblePadding)
	collectibles := s.collectibles[:0]
	for _, c := range s.collectibles {
		if s.interrupted() || !pickBox.Intersects(c.Rect()) {
			collectibles = append(collectibles, c)
			continue
		}
		s.pickUp(c)
	}
	clear(s.collectibles[len(collectibles):])
	s.collectibles = collectibles
}

// removeHits drops destroyed projectiles and obstacles.
func (s *Session) removeHits(shots map[*Projectile]bool, obstacles map[*Obstacle]bool) {
	if len(shots) > 0 {
		kept := s.projectiles[:0]
		for _, p := range s.projectiles {
			if !shots[p] {
				kept = append(kept, p)
			}
		}
		clear(s.projectiles[len(kept):])
		s.projectiles = kept
	}
	if len(obstacles) > 0 {
		kept := s.obstacles[:0]
		for _, o := range s.obstacles {
			if !obstacles[o] {
				kept = append(kept, o)
			}
		}
		clear(s.obstacles[len(kept):])
		s.obstacles = kept
	}
}

// pickUp applies a collected pickup.
func (s *Session) pickUp(c *Collectible) {
	switch c.Kind {
	case CollectPatty:
		s.emit(EventCollect, c.Kind.String(), s.cfg.Scoring.CollectPoints)
		s.addScore(s.cfg.Scoring.CollectPoints)
	case CollectRiddleOrb:
		s.emit(EventCollect, c.Kind.String(), 0)
		if s.level.GatesDamage() {
			s.openQuiz(QuizRiddle, "")
		} else {
			s.grantRandomPowerUp()
		}
	}
}

// applyOrDeferDamage is the single entry point for every hit. It returns
// false when the hit is ignored. Otherwise the post-hit window starts and
// the damage is either committed now (easy) or deferred to a quiz.
func (s *Session) applyOrDeferDamage(source DamageSource) bool {
	if s.power.Active(PowerInvulnerable) {
		return false
	}
	if source != SourcePit && s.player.Invulnerable > 0 {
		return false
	}

	s.startInvulnerability()
	if !s.level.GatesDamage() {
		s.commitDamage(source)
		return true
	}
	// A quiz already open wins; this hit is dropped.
	s.openQuiz(s.deck.DamageKind(), source)
	return true
}
