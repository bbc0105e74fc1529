package carve

import "testing"

func TestGraphStartsWithRoot(t *testing.T) {
	g := NewGraph()
	root := g.Root()
	if root == nil {
		t.Fatal("no root")
	}
	assertInt(t, "root id", root.ID(), RootNodeID)
	assertTrue(t, "root type", root.Type == NodeTypeRoot)
	assertTrue(t, "empty", g.Empty())
}

func TestGraphEmplace(t *testing.T) {
	g := NewGraph()
	n := NewModelNode("hull")
	n.SetVolume(NewVolume(NewRegionSpan(0, 3)))
	id, err := g.Emplace(n, RootNodeID)
	if err != nil {
		t.Fatalf("Emplace: %v", err)
	}
	assertInt(t, "assigned id", id, 1)
	assertInt(t, "parent", n.Parent(), RootNodeID)
	assertInt(t, "root children", len(g.Root().Children()), 1)
	assertInt(t, "size", g.Size(), 1)

	// Ids stay unique and increasing.
	m := NewGroupNode("grp")
	id2, err := g.Emplace(m, id)
	if err != nil {
		t.Fatalf("Emplace child: %v", err)
	}
	assertInt(t, "second id", id2, 2)
	assertInt(t, "group parent", m.Parent(), id)
}

func TestGraphEmplaceRejects(t *testing.T) {
	g := NewGraph()
	if _, err := g.Emplace(NewModelNode("m"), 99); err == nil {
		t.Fatal("missing parent should fail")
	}
	if _, err := g.Emplace(newNode(NodeTypeRoot, "root2"), RootNodeID); err == nil {
		t.Fatal("second root should fail")
	}
	n := NewModelNode("m")
	if _, err := g.Emplace(n, RootNodeID); err != nil {
		t.Fatalf("Emplace: %v", err)
	}
	if _, err := g.Emplace(n, RootNodeID); err == nil {
		t.Fatal("re-emplacing an attached node should fail")
	}
}

func TestGraphRemoveReleasesSubtree(t *testing.T) {
	g := NewGraph()
	grp := NewGroupNode("grp")
	gid, _ := g.Emplace(grp, RootNodeID)
	child := NewModelNode("m")
	child.SetVolume(NewVolume(NewRegionSpan(0, 1)))
	cid, _ := g.Emplace(child, gid)

	assertTrue(t, "remove", g.Remove(gid))
	if g.Node(gid) != nil || g.Node(cid) != nil {
		t.Fatal("subtree still present after Remove")
	}
	if child.Volume() != nil {
		t.Fatal("removed node still owns its volume")
	}
	assertFalse(t, "remove root", g.Remove(RootNodeID))
	assertFalse(t, "remove unknown", g.Remove(42))
}

func TestGraphClear(t *testing.T) {
	g := NewGraph()
	n := NewModelNode("m")
	n.SetVolume(NewVolume(NewRegionSpan(0, 1)))
	g.Emplace(n, RootNodeID)
	g.Clear()
	assertTrue(t, "empty after clear", g.Empty())
	assertInt(t, "fresh root", g.Root().ID(), RootNodeID)
	// Ids restart.
	m := NewModelNode("m2")
	id, _ := g.Emplace(m, RootNodeID)
	assertInt(t, "id restarts", id, 1)
}

func TestGraphForEachModelOrder(t *testing.T) {
	g := NewGraph()
	for _, name := range []string{"a", "b", "c"} {
		n := NewModelNode(name)
		n.SetVolume(NewVolume(NewRegionSpan(0, 0)))
		g.Emplace(n, RootNodeID)
	}
	var names []string
	g.ForEachModel(func(n *Node) { names = append(names, n.Name) })
	for i, want := range []string{"a", "b", "c"} {
		if names[i] != want {
			t.Fatalf("order[%d] = %q, want %q", i, names[i], want)
		}
	}
}

func TestGraphFindByName(t *testing.T) {
	g := NewGraph()
	n := NewModelNode("hull")
	n.SetVolume(NewVolume(NewRegionSpan(0, 0)))
	g.Emplace(n, RootNodeID)
	if g.FindByName("hull") != n {
		t.Fatal("FindByName missed an existing node")
	}
	if g.FindByName("missing") != nil {
		t.Fatal("FindByName invented a node")
	}
}

func TestGraphDefaultPaletteInjection(t *testing.T) {
	custom := NewPalette()
	custom.Add(Color{1, 2, 3, 255})
	g := NewGraph(WithDefaultPalette(custom))

	n := NewModelNode("m")
	g.Emplace(n, RootNodeID)
	if g.PaletteFor(n) != custom {
		t.Fatal("node without own palette should resolve against the injected default")
	}
	own := NewPalette()
	n.SetPalette(own)
	if g.PaletteFor(n) != own {
		t.Fatal("own palette should win")
	}
}

func TestNodeVolumeOwnership(t *testing.T) {
	n := NewModelNode("m")
	v := NewVolume(NewRegionSpan(0, 1))
	n.SetVolume(v)
	if n.TakeVolume() != v {
		t.Fatal("TakeVolume should hand out the owned volume")
	}
	if n.Volume() != nil {
		t.Fatal("node still owns the volume after TakeVolume")
	}
}

func TestNonModelNodeRejectsVolume(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("group node accepting a volume should panic")
		}
	}()
	NewGroupNode("grp").SetVolume(NewVolume(NewRegionSpan(0, 0)))
}

func TestNodeProperties(t *testing.T) {
	n := NewCameraNode("cam")
	n.SetProperty(PropFieldOfView, "45")
	n.SetProperty(PropOrthographic, "false")
	if n.Property(PropFieldOfView) != "45" {
		t.Fatal("property lost")
	}
	if n.Property("missing") != "" {
		t.Fatal("missing property should read empty")
	}
	assertInt(t, "property count", len(n.Properties()), 2)
}
