package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scenekit/internal/engine"
	"github.com/san-kum/scenekit/internal/physics"
	"github.com/san-kum/scenekit/internal/physics/memworld"
)

var _ = Describe("SceneHandle", func() {
	var (
		eng   *engine.Engine
		world *memworld.World
		h     *engine.SceneHandle
	)

	box := func(x float64) engine.BodyBuilder {
		return engine.BodyBuilder{
			Rigid:     physics.RigidBodyDesc{Mass: 1, Position: physics.Vec2{X: x}},
			Colliders: []physics.ColliderDesc{{Shape: physics.Box, Width: 1, Height: 1}},
		}
	}

	BeforeEach(func() {
		var err error
		world, err = memworld.New(physics.Settings{Gravity: physics.Vec2{Y: -10}, Integrator: "euler"})
		Expect(err).NotTo(HaveOccurred())
		eng = engine.New(nil)
		Expect(eng.AddScene(1, world)).To(Succeed())
		h = eng.Handle(1)
	})

	Describe("AddBody", func() {
		It("hands out consecutive ids starting at zero", func() {
			Expect(h.AddBody(box(0))).To(BeEquivalentTo(0))
			Expect(h.AddBody(box(2))).To(BeEquivalentTo(1))
			Expect(eng.BodyIDs(1)).To(Equal([]uint64{0, 1}))
		})

		It("exposes solver state through the handle", func() {
			id := h.AddBody(box(4))
			world.Step(0.5)

			st, ok := h.BodyState(id)
			Expect(ok).To(BeTrue())
			Expect(st.Position.X).To(BeNumerically("~", 4, 1e-9))
			Expect(st.Velocity.Y).To(BeNumerically("<", 0))
		})
	})

	Describe("AddJoint", func() {
		It("shares the body counter", func() {
			a := h.AddBody(box(0))
			b := h.AddBody(box(2))
			j := h.AddJoint(engine.Joint{Body1: a, Body2: b, Desc: physics.JointDesc{Kind: physics.SpringJoint, Stiffness: 10}})

			Expect(j).To(BeEquivalentTo(2))
			rec, ok := eng.Joint(j)
			Expect(ok).To(BeTrue())
			Expect(rec.Kind).To(Equal(physics.SpringJoint))

			ud, ok := world.JointUserData(rec.Handle)
			Expect(ok).To(BeTrue())
			Expect(ud.ID()).To(Equal(j))
		})

		It("panics with a fatal error for an unknown body", func() {
			a := h.AddBody(box(0))
			Expect(func() {
				h.AddJoint(engine.Joint{Body1: a, Body2: 50})
			}).To(PanicWith(MatchError(engine.ErrUnknownBody)))
			Expect(eng.NextID()).To(BeEquivalentTo(2))
		})
	})

	Describe("listeners", func() {
		It("keeps only the last step listener", func() {
			var got []string
			h.SetStepListener(func(*engine.SceneHandle, uint64) { got = append(got, "a") })
			h.SetStepListener(func(*engine.SceneHandle, uint64) { got = append(got, "b") })

			Expect(eng.DispatchStep(1, 0)).To(BeTrue())
			Expect(got).To(Equal([]string{"b"}))
		})

		It("lets a listener remove bodies", func() {
			id := h.AddBody(box(0))
			h.SetStepListener(func(h *engine.SceneHandle, tick uint64) {
				Expect(h.RemoveBody(id)).To(BeTrue())
			})
			eng.DispatchStep(1, 3)

			_, ok := h.Body(id)
			Expect(ok).To(BeFalse())
			Expect(world.ColliderCount()).To(BeZero())
		})
	})
})
