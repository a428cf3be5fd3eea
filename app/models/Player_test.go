package models

import (
	"reflect"
	"testing"
)

func TestRankLadder(t *testing.T) {
	if Promote(Proletariat) != PartyMember || Promote(PartyMember) != Commissar ||
		Promote(Commissar) != InnerCircle {
		t.Fatal("ladder out of order going up")
	}
	if Promote(InnerCircle) != InnerCircle {
		t.Fatal("promotion past the top")
	}
	if Demote(InnerCircle) != Commissar || Demote(Commissar) != PartyMember ||
		Demote(PartyMember) != Proletariat {
		t.Fatal("ladder out of order going down")
	}
	if Demote(Proletariat) != Proletariat {
		t.Fatal("demotion below the bottom")
	}
	if RankIndex("tsar") != -1 {
		t.Fatal("unknown rank should index to -1")
	}
}

func TestPropertyList(t *testing.T) {
	p := &Player{}
	p.AddProperty(14)
	p.AddProperty(1)
	p.AddProperty(9)
	p.AddProperty(9) // duplicate ignored

	if !reflect.DeepEqual(p.Properties, []int{1, 9, 14}) {
		t.Fatalf("properties = %v", p.Properties)
	}
	if !p.Owns(9) || p.Owns(2) {
		t.Fatal("ownership lookup wrong")
	}

	p.RemoveProperty(9)
	if !reflect.DeepEqual(p.Properties, []int{1, 14}) {
		t.Fatalf("properties after removal = %v", p.Properties)
	}
	p.RemoveProperty(99) // unknown id is a no-op
	if len(p.Properties) != 2 {
		t.Fatal("removal of an unknown id changed the list")
	}
}
