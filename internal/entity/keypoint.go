package entity

// Joint names follow the COCO 17-keypoint topology used by the pose
// detection service (YOLOv8-pose ordering).
type JointName string

const (
	JointNose          JointName = "nose"
	JointLeftEye       JointName = "left_eye"
	JointRightEye      JointName = "right_eye"
	JointLeftEar       JointName = "left_ear"
	JointRightEar      JointName = "right_ear"
	JointLeftShoulder  JointName = "left_shoulder"
	JointRightShoulder JointName = "right_shoulder"
	JointLeftElbow     JointName = "left_elbow"
	JointRightElbow    JointName = "right_elbow"
	JointLeftWrist     JointName = "left_wrist"
	JointRightWrist    JointName = "right_wrist"
	JointLeftHip       JointName = "left_hip"
	JointRightHip      JointName = "right_hip"
	JointLeftKnee      JointName = "left_knee"
	JointRightKnee     JointName = "right_knee"
	JointLeftAnkle     JointName = "left_ankle"
	JointRightAnkle    JointName = "right_ankle"

	NumJoints = 17
)

// JointOrder is the canonical detector index order (index 0 = nose).
var JointOrder = [NumJoints]JointName{
	JointNose,
	JointLeftEye, JointRightEye,
	JointLeftEar, JointRightEar,
	JointLeftShoulder, JointRightShoulder,
	JointLeftElbow, JointRightElbow,
	JointLeftWrist, JointRightWrist,
	JointLeftHip, JointRightHip,
	JointLeftKnee, JointRightKnee,
	JointLeftAnkle, JointRightAnkle,
}

type View string

const (
	ViewFront View = "front"
	ViewSide  View = "side"
)

// Keypoint is a detected anatomical landmark in image space, origin
// top-left. Confidence 0 means the joint was not detected and the
// coordinates carry no meaning.
type Keypoint struct {
	Name       JointName `json:"name"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Confidence float64   `json:"confidence"`
}

// KeypointSet holds the detected joints of a single subject in a
// single image. It is created once per analyzed image and treated as
// immutable afterwards.
type KeypointSet struct {
	View   View                   `json:"view,omitempty"`
	Points map[JointName]Keypoint `json:"points"`
}

func NewKeypointSet(view View) *KeypointSet {
	return &KeypointSet{
		View:   view,
		Points: make(map[JointName]Keypoint, NumJoints),
	}
}

// Get returns the named joint when it was detected at all.
func (s *KeypointSet) Get(name JointName) (Keypoint, bool) {
	if s == nil {
		return Keypoint{}, false
	}
	kp, ok := s.Points[name]
	if !ok || kp.Confidence <= 0 {
		return Keypoint{}, false
	}
	return kp, true
}

// Reliable returns the named joint only when its confidence clears
// the given threshold.
func (s *KeypointSet) Reliable(name JointName, threshold float64) (Keypoint, bool) {
	kp, ok := s.Get(name)
	if !ok || kp.Confidence < threshold {
		return Keypoint{}, false
	}
	return kp, true
}
