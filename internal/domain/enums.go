package domain

// Toxicity classifies how safe a mushroom is to eat.
type Toxicity string

const (
	ToxicityUnknown Toxicity = "UNKNOWN"
	ToxicityEdible  Toxicity = "EDIBLE"
	ToxicityWarning Toxicity = "WARNING"
	ToxicityToxic   Toxicity = "TOXIC"
)

func (t Toxicity) String() string { return string(t) }

func (t Toxicity) IsValid() bool {
	switch t {
	case ToxicityUnknown, ToxicityEdible, ToxicityWarning, ToxicityToxic:
		return true
	}
	return false
}

// SavedKind identifies one of the user's bookmark lists.
type SavedKind string

const (
	SavedKindMushrooms SavedKind = "mushrooms"
	SavedKindLocations SavedKind = "locations"
	SavedKindRecipes   SavedKind = "recipes"
)

func (k SavedKind) String() string { return string(k) }

func (k SavedKind) IsValid() bool {
	switch k {
	case SavedKindMushrooms, SavedKindLocations, SavedKindRecipes:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeLocation        EntityType = "LOCATION"
	EntityTypeMushroom        EntityType = "MUSHROOM"
	EntityTypeRecipe          EntityType = "RECIPE"
	EntityTypeComment         EntityType = "COMMENT"
	EntityTypeUser            EntityType = "USER"
	EntityTypeSimilarityGroup EntityType = "SIMILARITY_GROUP"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeLocation, EntityTypeMushroom, EntityTypeRecipe,
		EntityTypeComment, EntityTypeUser, EntityTypeSimilarityGroup:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}
