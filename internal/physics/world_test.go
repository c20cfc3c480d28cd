package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spheredrop/internal/dynamo"
	"github.com/san-kum/spheredrop/internal/physics"
)

type scene struct {
	world  *physics.World
	sphere *physics.Body
	ground *physics.Body
}

func newDropScene() scene {
	w, err := physics.NewWorld(physics.WorldOptions{Gravity: mgl64.Vec3{0, -9.82, 0}})
	Expect(err).NotTo(HaveOccurred())

	sphere, err := physics.NewBody(physics.BodyOptions{
		Mass:           5,
		Shape:          physics.MustSphere(1),
		Position:       mgl64.Vec3{0, 10, 0},
		LinearDamping:  physics.DefaultLinearDamping,
		AngularDamping: physics.DefaultAngularDamping,
	})
	Expect(err).NotTo(HaveOccurred())
	w.AddBody(sphere)

	ground, err := physics.NewBody(physics.BodyOptions{
		Type:       physics.Static,
		Shape:      physics.NewPlane(),
		Quaternion: physics.QuatFromEuler(-math.Pi/2, 0, 0),
	})
	Expect(err).NotTo(HaveOccurred())
	w.AddBody(ground)

	return scene{world: w, sphere: sphere, ground: ground}
}

var _ = Describe("World", func() {
	var s scene

	BeforeEach(func() {
		s = newDropScene()
	})

	It("points the rotated ground plane up", func() {
		n := s.ground.PlaneNormal()
		Expect(n.Sub(mgl64.Vec3{0, 1, 0}).Len()).To(BeNumerically("<", 1e-9))
	})

	It("descends monotonically before touching the ground", func() {
		prev := s.sphere.Position.Y()
		for i := 0; i < 60; i++ {
			s.world.FixedStep()
			y := s.sphere.Position.Y()
			Expect(y).To(BeNumerically("<", prev))
			prev = y
		}
	})

	It("stays above one radius until the first contact", func() {
		for i := 0; i < 300; i++ {
			s.world.FixedStep()
			if _, ok := s.world.InContact(s.sphere); ok {
				break
			}
			Expect(s.sphere.Position.Y()).To(BeNumerically(">", 1.0))
		}
	})

	It("settles on the ground after five seconds", func() {
		for i := 0; i < 300; i++ {
			s.world.FixedStep()
			Expect(s.sphere.Position.Y()).To(BeNumerically(">=", 1.0-1e-9))
		}
		Expect(s.sphere.Position.Y()).To(BeNumerically("~", 1.0, 0.01))
		Expect(math.Abs(s.sphere.Velocity.Y())).To(BeNumerically("<", 0.5))
		Expect(s.world.StepCount()).To(Equal(300))
		Expect(s.world.Time()).To(BeNumerically("~", 5.0, 1e-9))
	})

	It("lands without bouncing under the default material", func() {
		landed := false
		for i := 0; i < 300; i++ {
			s.world.FixedStep()
			if _, ok := s.world.InContact(s.sphere); ok {
				landed = true
			}
			if landed {
				Expect(s.sphere.Position.Y()).To(BeNumerically("<=", 1.0+1e-6))
			}
		}
		Expect(landed).To(BeTrue())
	})

	It("never moves the static ground", func() {
		pos, q := s.ground.Position, s.ground.Quaternion
		for i := 0; i < 300; i++ {
			s.world.FixedStep()
		}
		Expect(s.ground.Position).To(Equal(pos))
		Expect(s.ground.Quaternion).To(Equal(q))
		Expect(s.ground.Velocity).To(Equal(mgl64.Vec3{}))
	})

	It("keeps gravity constant", func() {
		g := s.world.Gravity()
		for i := 0; i < 120; i++ {
			s.world.FixedStep()
			Expect(s.world.Gravity()).To(Equal(g))
		}
	})

	It("turns sliding into spin through friction", func() {
		s.sphere.Position = mgl64.Vec3{0, 1, 0}
		s.sphere.Velocity = mgl64.Vec3{2, 0, 0}
		for i := 0; i < 10; i++ {
			s.world.FixedStep()
		}
		Expect(s.sphere.AngularVelocity.Z()).To(BeNumerically("<", 0))
		Expect(s.sphere.Velocity.X()).To(BeNumerically("<", 2))
		Expect(s.sphere.Quaternion.Len()).To(BeNumerically("~", 1.0, 1e-9))
	})

	Context("with wall-clock stepping", func() {
		It("carries leftover time into the next call", func() {
			Expect(s.world.Step(0.04)).To(Equal(2))
			Expect(s.world.Step(0.005)).To(Equal(0))
			Expect(s.world.Step(0.006)).To(Equal(1))
		})

		It("caps the number of substeps", func() {
			Expect(s.world.Step(1.0)).To(Equal(physics.DefaultMaxSubSteps))
			Expect(s.world.Step(0)).To(Equal(0))
		})
	})
})

var _ = DescribeTable("NewWorld rejects bad options",
	func(opts physics.WorldOptions) {
		_, err := physics.NewWorld(opts)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	},
	Entry("NaN gravity", physics.WorldOptions{Gravity: mgl64.Vec3{0, math.NaN(), 0}}),
	Entry("infinite gravity", physics.WorldOptions{Gravity: mgl64.Vec3{math.Inf(1), 0, 0}}),
	Entry("negative step", physics.WorldOptions{FixedStep: -0.1}),
)
