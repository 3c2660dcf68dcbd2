package valueobjects

import (
	"fmt"
	"strings"
)

// MemberType identifies which set of plan bounds applies to a member.
type MemberType string

const (
	MemberTypeMain               MemberType = "main_member"
	MemberTypeSpouse             MemberType = "spouse"
	MemberTypeDependant          MemberType = "dependant"
	MemberTypeExtended           MemberType = "extended_member"
	MemberTypeAdditionalExtended MemberType = "additional_extended_member"
)

func (t MemberType) String() string {
	return string(t)
}

// IsExtendedKind reports whether the type is held by an ExtendedMember.
func (t MemberType) IsExtendedKind() bool {
	switch t {
	case MemberTypeSpouse, MemberTypeDependant, MemberTypeExtended, MemberTypeAdditionalExtended:
		return true
	}
	return false
}

var ValidMemberTypes = map[MemberType]bool{
	MemberTypeMain:               true,
	MemberTypeSpouse:             true,
	MemberTypeDependant:          true,
	MemberTypeExtended:           true,
	MemberTypeAdditionalExtended: true,
}

// ExtendedMemberTypes lists the quota-limited types in display order.
var ExtendedMemberTypes = []MemberType{
	MemberTypeSpouse,
	MemberTypeDependant,
	MemberTypeExtended,
	MemberTypeAdditionalExtended,
}

var memberTypeAliases = map[string]MemberType{
	"main":                       MemberTypeMain,
	"main member":                MemberTypeMain,
	"principal":                  MemberTypeMain,
	"spouse":                     MemberTypeSpouse,
	"husband":                    MemberTypeSpouse,
	"wife":                       MemberTypeSpouse,
	"partner":                    MemberTypeSpouse,
	"dependant":                  MemberTypeDependant,
	"dependent":                  MemberTypeDependant,
	"child":                      MemberTypeDependant,
	"children":                   MemberTypeDependant,
	"extended":                   MemberTypeExtended,
	"extended member":            MemberTypeExtended,
	"extended family":            MemberTypeExtended,
	"additional extended":        MemberTypeAdditionalExtended,
	"additional extended member": MemberTypeAdditionalExtended,
	"additional":                 MemberTypeAdditionalExtended,
}

// ParseMemberType maps a code or free-text label ("Extended Member",
// "additional-extended", "child") to a MemberType.
func ParseMemberType(s string) (MemberType, error) {
	key := normalizeLabel(s)
	if t := MemberType(strings.ReplaceAll(key, " ", "_")); ValidMemberTypes[t] {
		return t, nil
	}
	if t, ok := memberTypeAliases[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown member type %q", s)
}

func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
