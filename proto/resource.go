package proto

import "wayl.io/wrd/registry"

// Each resource type below is a thin value carrying only the state
// the plumbing layer needs to route requests and enforce role
// invariants (§1 non-goals: semantic behavior is out of scope). All
// implement registry.Resource.

type Display struct{ ID registry.ObjectID }

func (d *Display) ObjectID() registry.ObjectID { return d.ID }
func (d *Display) Kind() registry.Kind         { return registry.KindDisplay }

type Registry struct{ ID registry.ObjectID }

func (r *Registry) ObjectID() registry.ObjectID { return r.ID }
func (r *Registry) Kind() registry.Kind         { return registry.KindRegistry }

type Callback struct{ ID registry.ObjectID }

func (c *Callback) ObjectID() registry.ObjectID { return c.ID }
func (c *Callback) Kind() registry.Kind         { return registry.KindCallback }

type Compositor struct{ ID registry.ObjectID }

func (c *Compositor) ObjectID() registry.ObjectID { return c.ID }
func (c *Compositor) Kind() registry.Kind         { return registry.KindCompositor }

type Subcompositor struct{ ID registry.ObjectID }

func (s *Subcompositor) ObjectID() registry.ObjectID { return s.ID }
func (s *Subcompositor) Kind() registry.Kind         { return registry.KindSubcompositor }

type Shm struct{ ID registry.ObjectID }

func (s *Shm) ObjectID() registry.ObjectID { return s.ID }
func (s *Shm) Kind() registry.Kind         { return registry.KindShm }

type ShmPool struct {
	ID registry.ObjectID
	Fd int
	Size int32
}

func (s *ShmPool) ObjectID() registry.ObjectID { return s.ID }
func (s *ShmPool) Kind() registry.Kind         { return registry.KindShmPool }

type Buffer struct {
	ID     registry.ObjectID
	PoolID registry.ObjectID
}

func (b *Buffer) ObjectID() registry.ObjectID { return b.ID }
func (b *Buffer) Kind() registry.Kind         { return registry.KindBuffer }

// Surface has fields for the role it has been promoted to; no handler
// sets them, so HasRole stays false (the role is tracked on
// XdgSurface instead). An xdg_surface or wl_subsurface request
// against a surface that already has a different role is a protocol
// error in real Wayland; this plumbing layer does not check it.
type Surface struct {
	ID       registry.ObjectID
	RoleID   registry.ObjectID
	HasRole  bool
}

func (s *Surface) ObjectID() registry.ObjectID { return s.ID }
func (s *Surface) Kind() registry.Kind         { return registry.KindSurface }

type Subsurface struct {
	ID        registry.ObjectID
	SurfaceID registry.ObjectID
	ParentID  registry.ObjectID
}

func (s *Subsurface) ObjectID() registry.ObjectID { return s.ID }
func (s *Subsurface) Kind() registry.Kind         { return registry.KindSubsurface }

type Region struct{ ID registry.ObjectID }

func (r *Region) ObjectID() registry.ObjectID { return r.ID }
func (r *Region) Kind() registry.Kind         { return registry.KindRegion }

type Seat struct{ ID registry.ObjectID }

func (s *Seat) ObjectID() registry.ObjectID { return s.ID }
func (s *Seat) Kind() registry.Kind         { return registry.KindSeat }

type Pointer struct{ ID registry.ObjectID }

func (p *Pointer) ObjectID() registry.ObjectID { return p.ID }
func (p *Pointer) Kind() registry.Kind         { return registry.KindPointer }

type Keyboard struct{ ID registry.ObjectID }

func (k *Keyboard) ObjectID() registry.ObjectID { return k.ID }
func (k *Keyboard) Kind() registry.Kind         { return registry.KindKeyboard }

type Touch struct{ ID registry.ObjectID }

func (t *Touch) ObjectID() registry.ObjectID { return t.ID }
func (t *Touch) Kind() registry.Kind         { return registry.KindTouch }

type Output struct{ ID registry.ObjectID }

func (o *Output) ObjectID() registry.ObjectID { return o.ID }
func (o *Output) Kind() registry.Kind         { return registry.KindOutput }

type DataDeviceManager struct{ ID registry.ObjectID }

func (d *DataDeviceManager) ObjectID() registry.ObjectID { return d.ID }
func (d *DataDeviceManager) Kind() registry.Kind         { return registry.KindDataDeviceManager }

type DataDevice struct {
	ID     registry.ObjectID
	SeatID registry.ObjectID
}

func (d *DataDevice) ObjectID() registry.ObjectID { return d.ID }
func (d *DataDevice) Kind() registry.Kind         { return registry.KindDataDevice }

// DataSource tracks the mime types offered so the standalone
// clipboard bridge (SPEC_FULL §2) knows what to ask the client for
// when its selection is set with no upstream to hand that off to.
type DataSource struct {
	ID        registry.ObjectID
	MimeTypes []string
}

func (d *DataSource) ObjectID() registry.ObjectID { return d.ID }
func (d *DataSource) Kind() registry.Kind         { return registry.KindDataSource }

type DataOffer struct{ ID registry.ObjectID }

func (d *DataOffer) ObjectID() registry.ObjectID { return d.ID }
func (d *DataOffer) Kind() registry.Kind         { return registry.KindDataOffer }

type Shell struct{ ID registry.ObjectID }

func (s *Shell) ObjectID() registry.ObjectID { return s.ID }
func (s *Shell) Kind() registry.Kind         { return registry.KindShell }

type ShellSurface struct {
	ID        registry.ObjectID
	SurfaceID registry.ObjectID
}

func (s *ShellSurface) ObjectID() registry.ObjectID { return s.ID }
func (s *ShellSurface) Kind() registry.Kind         { return registry.KindShellSurface }

type XdgWmBase struct{ ID registry.ObjectID }

func (x *XdgWmBase) ObjectID() registry.ObjectID { return x.ID }
func (x *XdgWmBase) Kind() registry.Kind         { return registry.KindXdgWmBase }

type XdgPositioner struct {
	ID     registry.ObjectID
	Width  int32
	Height int32
}

func (x *XdgPositioner) ObjectID() registry.ObjectID { return x.ID }
func (x *XdgPositioner) Kind() registry.Kind         { return registry.KindXdgPositioner }

type XdgSurface struct {
	ID        registry.ObjectID
	SurfaceID registry.ObjectID
	RoleID    registry.ObjectID
	HasRole   bool
}

func (x *XdgSurface) ObjectID() registry.ObjectID { return x.ID }
func (x *XdgSurface) Kind() registry.Kind         { return registry.KindXdgSurface }

type XdgToplevel struct {
	ID           registry.ObjectID
	XdgSurfaceID registry.ObjectID
}

func (x *XdgToplevel) ObjectID() registry.ObjectID { return x.ID }
func (x *XdgToplevel) Kind() registry.Kind         { return registry.KindXdgToplevel }

type XdgPopup struct {
	ID           registry.ObjectID
	XdgSurfaceID registry.ObjectID
	ParentID     registry.ObjectID
}

func (x *XdgPopup) ObjectID() registry.ObjectID { return x.ID }
func (x *XdgPopup) Kind() registry.Kind         { return registry.KindXdgPopup }
