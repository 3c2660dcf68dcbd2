package valueobjects

import (
	"fmt"
	"strings"
)

// Relation is a member's relation to the main member.
type Relation string

const (
	RelationSelf        Relation = "self"
	RelationSpouse      Relation = "spouse"
	RelationChild       Relation = "child"
	RelationParent      Relation = "parent"
	RelationParentInLaw Relation = "parent_in_law"
	RelationSibling     Relation = "sibling"
	RelationGrandparent Relation = "grandparent"
	RelationGrandchild  Relation = "grandchild"
	RelationAuntUncle   Relation = "aunt_uncle"
	RelationNieceNephew Relation = "niece_nephew"
	RelationCousin      Relation = "cousin"
	RelationOther       Relation = "other"
)

func (r Relation) String() string {
	return string(r)
}

var ValidRelations = map[Relation]bool{
	RelationSelf:        true,
	RelationSpouse:      true,
	RelationChild:       true,
	RelationParent:      true,
	RelationParentInLaw: true,
	RelationSibling:     true,
	RelationGrandparent: true,
	RelationGrandchild:  true,
	RelationAuntUncle:   true,
	RelationNieceNephew: true,
	RelationCousin:      true,
	RelationOther:       true,
}

var relationAliases = map[string]Relation{
	"husband":       RelationSpouse,
	"wife":          RelationSpouse,
	"partner":       RelationSpouse,
	"son":           RelationChild,
	"daughter":      RelationChild,
	"stepchild":     RelationChild,
	"mother":        RelationParent,
	"father":        RelationParent,
	"mother in law": RelationParentInLaw,
	"father in law": RelationParentInLaw,
	"parent in law": RelationParentInLaw,
	"brother":       RelationSibling,
	"sister":        RelationSibling,
	"grandmother":   RelationGrandparent,
	"grandfather":   RelationGrandparent,
	"grandson":      RelationGrandchild,
	"granddaughter": RelationGrandchild,
	"aunt":          RelationAuntUncle,
	"uncle":         RelationAuntUncle,
	"niece":         RelationNieceNephew,
	"nephew":        RelationNieceNephew,
	"main member":   RelationSelf,
}

// ParseRelation maps a code or free-text relation ("Mother-in-law", "Son")
// to a Relation.
func ParseRelation(s string) (Relation, error) {
	key := normalizeLabel(s)
	if r := Relation(strings.ReplaceAll(key, " ", "_")); ValidRelations[r] {
		return r, nil
	}
	if r, ok := relationAliases[key]; ok {
		return r, nil
	}
	return "", fmt.Errorf("unknown relation %q", s)
}
