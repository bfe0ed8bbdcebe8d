// Package config provides YAML-based configuration for the shooter
// simulation: every tunable constant, the hard-mode preset and the linear
// ramps used for spawn and difficulty curves.
package config

// ShooterConfig contains all configuration for the shooter simulation.
type ShooterConfig struct {
	Arena         ArenaConfig         `yaml:"arena"`
	Player        PlayerConfig        `yaml:"player"`
	Weapon        WeaponConfig        `yaml:"weapon"`
	Enemies       EnemiesConfig       `yaml:"enemies"`
	Asteroids     AsteroidsConfig     `yaml:"asteroids"`
	PowerUps      PowerUpConfig       `yaml:"power_ups"`
	Crit          CritConfig          `yaml:"crit"`
	Effects       EffectsConfig       `yaml:"effects"`
	Spawn         SpawnConfig         `yaml:"spawn"`
	Progression   ProgressionConfig   `yaml:"progression"`
	Bosses        BossesConfig        `yaml:"bosses"`
	HardMode      HardModeConfig      `yaml:"hard_mode"`
	Heroes        HeroesConfig        `yaml:"heroes"`
	Shop          ShopConfig          `yaml:"shop"`
	Upgrades      UpgradesConfig      `yaml:"upgrades"`
	Encounters    EncounterTuning     `yaml:"encounters"`
	AsteroidField AsteroidFieldConfig `yaml:"asteroid_field"`
	TrainingSim   TrainingSimConfig   `yaml:"training_sim"`
	Montezuma     MontezumaConfig     `yaml:"montezuma"`
	Story         []StoryMilestone    `yaml:"story"`
}

// ArenaConfig defines the fixed play field.
type ArenaConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	LaneCount int     `yaml:"lane_count"`
	GridCell  float64 `yaml:"grid_cell"`
}

// PlayerConfig defines player kinematics, hitbox and death sequence.
type PlayerConfig struct {
	Y                      float64 `yaml:"y"`
	Width                  float64 `yaml:"width"`
	MaxSpeed               float64 `yaml:"max_speed"`
	Acceleration           float64 `yaml:"acceleration"`
	Friction               float64 `yaml:"friction"`
	PointerDeadzone        float64 `yaml:"pointer_deadzone"`
	BodyRadius             float64 `yaml:"body_radius"`
	BodyOffsetY            float64 `yaml:"body_offset_y"`
	NoseRadius             float64 `yaml:"nose_radius"`
	NoseOffsetY            float64 `yaml:"nose_offset_y"`
	DeathDuration          float64 `yaml:"death_duration"`
	DeathExplosions        int     `yaml:"death_explosions"`
	DeathExplosionInterval float64 `yaml:"death_explosion_interval"`
	ReviveInvulnerability  float64 `yaml:"revive_invulnerability"`
	ShieldBreakGrace       float64 `yaml:"shield_break_grace"`
}

// WeaponConfig defines the player's guns.
type WeaponConfig struct {
	InitialAmmo          int     `yaml:"initial_ammo"`
	ExtendedMag          int     `yaml:"extended_mag"`
	ReloadTime           float64 `yaml:"reload_time"`
	ReloadReductionStack float64 `yaml:"reload_reduction_per_stack"`
	ReloadReductionMax   float64 `yaml:"reload_reduction_max"`
	AutoReloadMax        float64 `yaml:"auto_reload_reduction_max"`
	ProjectileSpeed      float64 `yaml:"projectile_speed"`
	ProjectileRadius     float64 `yaml:"projectile_radius"`
	DamageMin            int     `yaml:"damage_min"`
	DamageMax            int     `yaml:"damage_max"`
	AutoFireInterval     float64 `yaml:"auto_fire_interval"`
	RapidFireInterval    float64 `yaml:"rapid_fire_interval"`
	SpreadOffset         float64 `yaml:"spread_offset"`
	TridentInterval      float64 `yaml:"trident_interval"`
	TridentIntervalL2    float64 `yaml:"trident_interval_l2"`
	TridentOffsetX       float64 `yaml:"trident_offset_x"`
	TridentOffsetY       float64 `yaml:"trident_offset_y"`
	HomingMaxSpeed       float64 `yaml:"homing_max_speed"`
	HomingRange          float64 `yaml:"homing_range"`
	TridentAngle         float64 `yaml:"trident_angle"`
	ClusterAngle         float64 `yaml:"cluster_angle"`
	SpawnOffsetY         float64 `yaml:"spawn_offset_y"`
}

// EnemiesConfig defines every enemy archetype.
type EnemiesConfig struct {
	Speed            float64       `yaml:"speed"`
	Width            float64       `yaml:"width"`
	Height           float64       `yaml:"height"`
	HitRadius        float64       `yaml:"hit_radius"`
	ProjectileSpeed  float64       `yaml:"projectile_speed"`
	ProjectileRadius float64       `yaml:"projectile_radius"`
	ShootInterval    float64       `yaml:"shoot_interval"`
	ShootJitter      float64       `yaml:"shoot_jitter"`
	SpreadOffset     float64       `yaml:"spread_offset"`
	Evasive          EvasiveConfig `yaml:"evasive"`
	Diver            DiverConfig   `yaml:"diver"`
	Support          SupportConfig `yaml:"support"`
	Elite            EliteConfig   `yaml:"elite"`
}

// EvasiveConfig defines the dodging archetype.
type EvasiveConfig struct {
	Spawn         SpawnRule `yaml:"spawn"`
	DodgeSpeed    float64   `yaml:"dodge_speed"`
	Cooldown      float64   `yaml:"cooldown"`
	ThreatHorizon float64   `yaml:"threat_horizon"` // seconds
	ThreatRadius  float64   `yaml:"threat_radius"`
	DodgeMin      float64   `yaml:"dodge_min"`
	DodgeJitter   float64   `yaml:"dodge_jitter"`
}

// DiverConfig defines the dive-pause-beam archetype.
type DiverConfig struct {
	Spawn        SpawnRule `yaml:"spawn"`
	Health       int       `yaml:"health"`
	DiveSpeed    float64   `yaml:"dive_speed"`
	Pause        float64   `yaml:"pause"`
	BeamInterval float64   `yaml:"beam_interval"`
	BeamDuration float64   `yaml:"beam_duration"`
	BeamHeight   float64   `yaml:"beam_height"`
	DepthMin     float64   `yaml:"depth_min"`
	DepthMargin  float64   `yaml:"depth_margin"`
}

// SupportConfig defines the buff-linking archetype.
type SupportConfig struct {
	Spawn             SpawnRule `yaml:"spawn"`
	MaxActive         int       `yaml:"max_active"`
	Health            int       `yaml:"health"`
	HealthStepLevels  int       `yaml:"health_step_levels"`
	HealthStep        int       `yaml:"health_step"`
	SpeedY            float64   `yaml:"speed_y"`
	AsteroidRepair    float64   `yaml:"asteroid_repair"` // health per second
	ShieldRegen       float64   `yaml:"shield_regen"`
	OscillationFreq   float64   `yaml:"oscillation_freq"`
	OscillationFactor float64   `yaml:"oscillation_factor"` // fraction of arena width
}

// EliteConfig defines the heavy encounter ship.
type EliteConfig struct {
	Health        int     `yaml:"health"`
	BurstInterval float64 `yaml:"burst_interval"`
	BurstSize     int     `yaml:"burst_size"`
	BurstSpread   float64 `yaml:"burst_spread"` // degrees between shots
}

// SpawnRule gates an archetype by level and ramps its chance once unlocked.
type SpawnRule struct {
	StartLevel int  `yaml:"start_level"`
	Chance     Ramp `yaml:"chance"`
}

// AsteroidTier is one asteroid size class.
type AsteroidTier struct {
	Name       string  `yaml:"name"`
	Health     int     `yaml:"health"`
	Radius     float64 `yaml:"radius"`
	Score      int     `yaml:"score"`
	Currency   int     `yaml:"currency"`
	PartChance float64 `yaml:"part_chance"`
	Weight     int     `yaml:"weight"`
}

// AsteroidsConfig defines asteroid spawning and size tiers.
type AsteroidsConfig struct {
	UnlockLevel int            `yaml:"unlock_level"`
	Chance      float64        `yaml:"chance"`
	BaseSpeedY  float64        `yaml:"base_speed_y"`
	DriftX      float64        `yaml:"drift_x"`
	Tiers       []AsteroidTier `yaml:"tiers"`
}

// PowerUpConfig defines drops and timed buffs.
type PowerUpConfig struct {
	DropChance   float64 `yaml:"drop_chance"`
	FallSpeed    float64 `yaml:"fall_speed"`
	Duration     float64 `yaml:"duration"`
	Radius       float64 `yaml:"radius"`
	CritBoost    float64 `yaml:"crit_boost"`
	GravitonPull float64 `yaml:"graviton_pull"`
}

// CritConfig defines critical hits and the chain sweep.
type CritConfig struct {
	Chance     float64 `yaml:"chance"`
	Multiplier float64 `yaml:"multiplier"`
	Radius     float64 `yaml:"radius"`
	Duration   float64 `yaml:"duration"`
}

// EffectsConfig defines cosmetic effect lifetimes.
type EffectsConfig struct {
	DamageNumber float64 `yaml:"damage_number"`
	Explosion    float64 `yaml:"explosion"`
	RockImpact   float64 `yaml:"rock_impact"`
	EmpArc       float64 `yaml:"emp_arc"`
}

// SpawnConfig defines the spawn interval curve.
type SpawnConfig struct {
	Interval Ramp `yaml:"interval"` // span in ms of game time
}

// ProgressionConfig defines level-up, scoring and end conditions.
type ProgressionConfig struct {
	EnemiesPerLevel     int     `yaml:"enemies_per_level"`
	BossInterval        int     `yaml:"boss_interval"`
	FinalLevel          int     `yaml:"final_level"`
	ScorePerHit         int     `yaml:"score_per_hit"`
	CurrencyPerKill     int     `yaml:"currency_per_kill"`
	StreakBonus         float64 `yaml:"streak_bonus"`
	PartChanceEnemy     float64 `yaml:"part_chance_enemy"`
	ShieldChance        float64 `yaml:"shield_chance"`
	LevelAnnounce       float64 `yaml:"level_announce"`
	VictoryPause        float64 `yaml:"victory_pause"`
	BetaUnlockLevels    int     `yaml:"beta_unlock_levels"`
	GammaUnlockScore    int     `yaml:"gamma_unlock_score"`
	Tier2UnlockStreak   int     `yaml:"tier2_unlock_streak"`
	HangarUnlockBosses  int     `yaml:"hangar_unlock_bosses"`
	OffscreenMargin     float64 `yaml:"offscreen_margin"`
	EnemyEscapeEndsGame bool    `yaml:"enemy_escape_ends_game"`
}

// BossesConfig defines shared boss tuning and the three boss types.
type BossesConfig struct {
	Thresholds      []float64      `yaml:"thresholds"`
	EnterDuration   float64        `yaml:"enter_duration"`
	DefeatDuration  float64        `yaml:"defeat_duration"`
	DeathExplosions int            `yaml:"death_explosions"`
	HitScore        int            `yaml:"hit_score"`
	DefeatScore     int            `yaml:"defeat_score"`
	DefeatCurrency  int            `yaml:"defeat_currency"`
	PartReward      int            `yaml:"part_reward"`
	PartChance      float64        `yaml:"part_chance"`
	HitMargin       float64        `yaml:"hit_margin"`
	InsightDamage   float64        `yaml:"insight_damage"`
	Scaling         BossScaling    `yaml:"scaling"`
	Warden          WardenConfig   `yaml:"warden"`
	Punisher        PunisherConfig `yaml:"punisher"`
	Overmind        OvermindConfig `yaml:"overmind"`
}

// BossScaling controls per-encounter boss scaling with diminishing returns.
type BossScaling struct {
	EncounterCap    int     `yaml:"encounter_cap"`
	HealthLinear    float64 `yaml:"health_linear"`
	HealthQuadratic float64 `yaml:"health_quadratic"`
	HealthCap       float64 `yaml:"health_cap"`
	AttackRate      float64 `yaml:"attack_rate"`
	AttackFloor     float64 `yaml:"attack_floor"`
	PunisherMinion  int     `yaml:"punisher_minion_add"`
	PunisherMinCap  int     `yaml:"punisher_minion_cap"`
	WardenWaveAdd   int     `yaml:"warden_wave_add"`
	WardenWaveCap   int     `yaml:"warden_wave_cap"`
	WardenWaveRate  float64 `yaml:"warden_wave_rate"`
	WardenWaveFloor float64 `yaml:"warden_wave_floor"`
	WardenMinionAdd int     `yaml:"warden_minion_add"`
	WardenMinionCap int     `yaml:"warden_minion_cap"`
}

// BossBody is the shared shape of every boss.
type BossBody struct {
	Health int     `yaml:"health"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Y      float64 `yaml:"y"`
}

// WardenConfig defines the first boss.
type WardenConfig struct {
	Body            BossBody `yaml:"body"`
	BarrageInterval float64  `yaml:"barrage_interval"`
	BarrageDecay    float64  `yaml:"barrage_decay"`
	BarrageDuration float64  `yaml:"barrage_duration"`
	SweepColumns    int      `yaml:"sweep_columns"`
	SweepSafeLanes  int      `yaml:"sweep_safe_lanes"`
	SweepWaves      int      `yaml:"sweep_waves"`
	SweepInterval   float64  `yaml:"sweep_interval"`
	SweepTail       float64  `yaml:"sweep_tail"`
	MinionDuration  float64  `yaml:"minion_duration"`
	MinionCount     int      `yaml:"minion_count"`
	BarrageSpread   float64  `yaml:"barrage_spread"` // fraction of body width
}

// PunisherConfig defines the second boss.
type PunisherConfig struct {
	Body            BossBody `yaml:"body"`
	BarrageInterval float64  `yaml:"barrage_interval"`
	BarrageDecay    float64  `yaml:"barrage_decay"`
	BarrageDuration float64  `yaml:"barrage_duration"`
	MinionDuration  float64  `yaml:"minion_duration"`
	MinionCount     int      `yaml:"minion_count"`
	LaserDuration   float64  `yaml:"laser_duration"`
	LaserCharge     float64  `yaml:"laser_charge"`
	LaserFire       float64  `yaml:"laser_fire"`
	LaserLanes      []int    `yaml:"laser_lanes"`
	LaserPicks      int      `yaml:"laser_picks"`
	CenterLaneLevel int      `yaml:"center_lane_level"`
}

// OvermindConfig defines the final boss.
type OvermindConfig struct {
	Body            BossBody `yaml:"body"`
	BarrageInterval float64  `yaml:"barrage_interval"`
	AddsThreshold   float64  `yaml:"adds_threshold"`
	FragmentCount   int      `yaml:"fragment_count"`
	FuryInterval    float64  `yaml:"fury_interval"`
	BeamEvery       float64  `yaml:"beam_every"`
	BeamCharge      float64  `yaml:"beam_charge"`
	BeamFire        float64  `yaml:"beam_fire"`
	SafeZoneWidth   float64  `yaml:"safe_zone_width"`
}

// HardModeConfig holds the multipliers applied by ApplyHardMode.
type HardModeConfig struct {
	EnemySpeed      float64 `yaml:"enemy_speed"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	FireRate        float64 `yaml:"fire_rate"`
	SpawnRate       float64 `yaml:"spawn_rate"`
}

// HeroesConfig defines the per-hero perks.
type HeroesConfig struct {
	AlphaCritBonus     float64   `yaml:"alpha_crit_bonus"`
	BetaAccelModifier  float64   `yaml:"beta_accel_modifier"`
	BetaFrictionMod    float64   `yaml:"beta_friction_modifier"`
	GammaShieldBonus   float64   `yaml:"gamma_shield_bonus"`
	EmpDamage          int       `yaml:"emp_damage"`
	EmpLevels          []EmpTier `yaml:"emp_levels"`
	SpeedBoostModifier float64   `yaml:"speed_boost_modifier"`
}

// EmpTier is the gamma EMP tuning unlocked at a shield upgrade level.
type EmpTier struct {
	Level    int     `yaml:"level"`
	Chance   float64 `yaml:"chance"`
	Range    float64 `yaml:"range"`
	Cooldown float64 `yaml:"cooldown"`
}

// ShopConfig defines consumable prices.
type ShopConfig struct {
	Revive          int `yaml:"revive"`
	FastReload      int `yaml:"fast_reload"`
	RapidFire       int `yaml:"rapid_fire"`
	SpeedBoost      int `yaml:"speed_boost"`
	FastReloadStack int `yaml:"fast_reload_stacks"`
}

// UpgradeTier is one purchasable upgrade level.
type UpgradeTier struct {
	Currency  int     `yaml:"currency"`
	Parts     int     `yaml:"parts"`
	Time      float64 `yaml:"time"` // wall-clock ms
	Effect    float64 `yaml:"effect"`
	CritBonus float64 `yaml:"crit_bonus,omitempty"`
}

// UpgradesConfig holds the hangar upgrade tables keyed by upgrade name.
type UpgradesConfig struct {
	Hero    map[string][]UpgradeTier `yaml:"hero"`
	General map[string][]UpgradeTier `yaml:"general"`
}

// EncounterTuning defines encounter timing and odds.
type EncounterTuning struct {
	Chance       float64 `yaml:"chance"`
	ProcessDelay float64 `yaml:"process_delay"`
	FightPrepare float64 `yaml:"fight_prepare"`
	FightOscAmp  float64 `yaml:"fight_oscillation_amplitude"`
	FightOscFreq float64 `yaml:"fight_oscillation_frequency"`
}

// AsteroidFieldConfig defines the timed survival mode.
type AsteroidFieldConfig struct {
	Duration       float64 `yaml:"duration"`
	SpawnInterval  float64 `yaml:"spawn_interval"`
	RewardCurrency int     `yaml:"reward_currency"`
	RewardParts    int     `yaml:"reward_parts"`
}

// TrainingSimConfig defines the precision mini-game.
type TrainingSimConfig struct {
	Countdown       float64 `yaml:"countdown"`
	Duration        float64 `yaml:"duration"`
	BaseTargets     int     `yaml:"base_targets"`
	HitsMin         int     `yaml:"hits_min"`
	HitsMax         int     `yaml:"hits_max"`
	RewardPerTarget int     `yaml:"reward_per_target"`
	HitCooldown     float64 `yaml:"hit_cooldown"`
	TargetRadius    float64 `yaml:"target_radius"`
}

// MontezumaConfig defines the persistent giant asteroid.
type MontezumaConfig struct {
	Health         int     `yaml:"health"`
	SpeedY         float64 `yaml:"speed_y"`
	SizeFactor     float64 `yaml:"size_factor"` // fraction of arena width
	RewardCurrency int     `yaml:"reward_currency"`
	RewardParts    int     `yaml:"reward_parts"`
}

// StoryMilestone is a briefing shown the first time a pilot reaches Level.
type StoryMilestone struct {
	Level int    `yaml:"level"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}
